package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQueryOrder(t *testing.T) {
	q, err := BuildSearchQuery(SearchCriteria{
		Location: " Paris ",
		Language: "French",
		Age:      "30",
		Gender:   "female",
		Date:     "2024-07-01",
	})
	require.NoError(t, err)

	assert.Equal(t, []Filter{
		{Field: FieldLocationCity, Value: "Paris"},
		{Field: FieldGender, Value: "female"},
		{Field: FieldAge, Value: 30},
		{Field: FieldLanguage, Value: "French"},
	}, q.Filters)
}

func TestBuildSearchQueryOnlyLocation(t *testing.T) {
	q, err := BuildSearchQuery(SearchCriteria{Location: "Paris", Date: "2024-07-01"})
	require.NoError(t, err)
	assert.Equal(t, []Filter{{Field: FieldLocationCity, Value: "Paris"}}, q.Filters)
}

func TestBuildSearchQueryValidation(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		want     error
	}{
		{"missing location", SearchCriteria{Date: "2024-07-01"}, ErrMissingCriteria},
		{"missing date", SearchCriteria{Location: "Paris"}, ErrMissingCriteria},
		{"blank location", SearchCriteria{Location: "   ", Date: "2024-07-01"}, ErrMissingCriteria},
		{"non numeric age", SearchCriteria{Location: "Paris", Date: "2024-07-01", Age: "thirty"}, ErrInvalidAgeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSearchQuery(tt.criteria)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSearchQueryMatches(t *testing.T) {
	paris := &UserProfile{ID: "a", Gender: "female", Age: 30, Language: "French", Location: &Location{City: "Paris"}}
	noLocation := &UserProfile{ID: "b", Gender: "female"}

	q, err := BuildSearchQuery(SearchCriteria{Location: "Paris", Gender: "female", Age: "30", Date: "d"})
	require.NoError(t, err)

	assert.True(t, q.Matches(paris))
	assert.False(t, q.Matches(noLocation))
	assert.False(t, q.Matches(&UserProfile{Gender: "female", Age: 31, Location: &Location{City: "Paris"}}))
	assert.False(t, q.Matches(&UserProfile{Gender: "female", Age: 30, Location: &Location{City: "paris"}}))
}

func TestWhereDoesNotAlias(t *testing.T) {
	base := SearchQuery{}.Where(FieldLocationCity, "Paris")
	a := base.Where(FieldGender, "male")
	b := base.Where(FieldGender, "female")

	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "male", a.Filters[1].Value)
	assert.Equal(t, "female", b.Filters[1].Value)
}

func TestUserProfileIsComplete(t *testing.T) {
	var nilProfile *UserProfile
	assert.False(t, nilProfile.IsComplete())
	assert.False(t, (&UserProfile{FirstName: "Ana", LastName: "Lee"}).IsComplete())
	assert.True(t, (&UserProfile{FirstName: "Ana", LastName: "Lee", Age: 25}).IsComplete())
}

func TestFlexStringUnmarshal(t *testing.T) {
	var req ItineraryRequest
	err := json.Unmarshal([]byte(`{"travelDates":{"start":"a","end":"b"},"interests":"food","budget":1500}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "1500", req.Budget.String())
	assert.Equal(t, "food", req.Interests.String())

	var empty ItineraryRequest
	err = json.Unmarshal([]byte(`{"budget":null}`), &empty)
	require.NoError(t, err)
	assert.Equal(t, "", empty.Budget.String())

	err = json.Unmarshal([]byte(`{"budget":{"amount":1}}`), &empty)
	assert.Error(t, err)
}

func TestItineraryRequestComplete(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"all fields", `{"travelDates":{"start":"2024-07-01","end":"2024-07-05"},"interests":"food","budget":500}`, true},
		{"no dates", `{"interests":"food","budget":500}`, false},
		{"empty dates", `{"travelDates":{},"interests":"food","budget":500}`, false},
		{"blank start", `{"travelDates":{"start":"  ","end":"2024-07-05"},"interests":"food","budget":500}`, false},
		{"missing end", `{"travelDates":{"start":"2024-07-01"},"interests":"food","budget":500}`, false},
		{"no budget", `{"travelDates":{"start":"2024-07-01","end":"2024-07-05"},"interests":"food"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ItineraryRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Complete())
		})
	}
}
