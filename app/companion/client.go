package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"travelcompanion/app/models"
)

// APIError is a non-2xx answer from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the travel companion backend
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a backend client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent on authenticated calls
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// errorMessage extracts "message" or "error" from a JSON body, or returns the text as is
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, models.CredentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Signup registers and keeps the returned token
func (c *Client) Signup(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signup", email, password)
}

// Signin signs in and keeps the returned token
func (c *Client) Signin(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signin", email, password)
}

func (c *Client) Signout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) CreateProfile(ctx context.Context, req models.CreateProfileRequest) (*models.UserProfile, error) {
	var resp struct {
		Profile *models.UserProfile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/profile", req, &resp); err != nil {
		return nil, err
	}
	return resp.Profile, nil
}

func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	var resp struct {
		Profile *models.UserProfile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Profile, nil
}

func (c *Client) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.MatchResult, error) {
	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/search", criteria, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (c *Client) SearchHistory(ctx context.Context) (*models.SearchHistoryResponse, error) {
	var resp models.SearchHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/search/history", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", models.ChatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func (c *Client) GenerateItinerary(ctx context.Context, req models.ItineraryRequest) (string, error) {
	var resp models.ItineraryResponse
	if err := c.do(ctx, http.MethodPost, "/generate-itinerary", req, &resp); err != nil {
		return "", err
	}
	return resp.Itinerary, nil
}
