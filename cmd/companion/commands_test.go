package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Path string
	Auth string
	Body map[string]interface{}
}

func newTestServer(t *testing.T, responses map[string]string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		requests = append(requests, rec)

		if resp, ok := responses[r.Method+" "+r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(resp))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","message":"not found"}`))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSigninCommand(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{
		"POST /api/auth/signin": `{"status":"success","user_id":"u1","token":"tok-1","has_profile":false}`,
	})

	out, err := run(t, "", "signin", "--server", server.URL, "--token", "", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "next screen: create-profile")
	assert.Contains(t, out, "COMPANION_TOKEN=tok-1")

	require.Len(t, *requests, 1)
	assert.Equal(t, "ana@example.com", (*requests)[0].Body["email"])
}

func TestSearchCommand(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{
		"POST /api/search": `{"status":"success","count":1,"matches":[{"id":"p1","first_name":"Ana","last_name":"Lee","age":30,"location":{"city":"Paris"}}]}`,
	})

	out, err := run(t, "", "search", "--server", server.URL, "--token", "tok-1",
		"--location", "Paris", "--date", "2024-07-01", "--gender", "", "--age", "", "--language", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Ana Lee")
	assert.Contains(t, out, "Age: 30")
	assert.Contains(t, out, "Location: Paris")

	require.Len(t, *requests, 1)
	assert.Equal(t, "Bearer tok-1", (*requests)[0].Auth)
}

func TestSearchCommandValidatesLocally(t *testing.T) {
	server, requests := newTestServer(t, nil)

	_, err := run(t, "", "search", "--server", server.URL, "--token", "tok-1", "--location", "", "--date", "2024-07-01")
	assert.Error(t, err)
	assert.Empty(t, *requests)
}

func TestChatCommandReadsStdin(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{
		"POST /chat": `{"reply":"Sounds fun."}`,
	})

	out, err := run(t, "first\n\nsecond\n", "chat", "--server", server.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ai> Sounds fun."))
	require.Len(t, *requests, 2)
	assert.Equal(t, "first", (*requests)[0].Body["message"])
	assert.Equal(t, "second", (*requests)[1].Body["message"])
}

func TestChatCommandSkipsBlankLines(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{
		"POST /chat": `{"reply":"Hello there."}`,
	})

	out, err := run(t, "hi\n\n   \n", "chat", "--server", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ai> Hello there.\n", out)
	assert.Len(t, *requests, 1)
}

func TestItineraryCommand(t *testing.T) {
	server, requests := newTestServer(t, map[string]string{
		"POST /generate-itinerary": `{"itinerary":"Day 1: Paris"}`,
	})

	out, err := run(t, "", "itinerary", "--server", server.URL,
		"--start", "Lyon", "--end", "Paris", "--interests", "food", "--budget", "800")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1: Paris")

	require.Len(t, *requests, 1)
	dates, ok := (*requests)[0].Body["travelDates"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Lyon", dates["start"])
	assert.Equal(t, "800", (*requests)[0].Body["budget"])
}
