package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Filterable profile fields, in bson dotted form
const (
	FieldLocationCity = "location.city"
	FieldGender       = "gender"
	FieldAge          = "age"
	FieldLanguage     = "language"
)

var (
	ErrMissingCriteria = errors.New("location and date are required")
	ErrInvalidAgeValue = errors.New("age must be a whole number")
)

// SearchCriteria is the transient input of a search. Location and Date are
// mandatory, the rest are optional equality filters.
type SearchCriteria struct {
	Location string `json:"location"`
	Gender   string `json:"gender,omitempty"`
	Age      string `json:"age,omitempty"`
	Language string `json:"language,omitempty"`
	Date     string `json:"date"`
}

// Normalize trims surrounding whitespace from every field
func (c SearchCriteria) Normalize() SearchCriteria {
	return SearchCriteria{
		Location: strings.TrimSpace(c.Location),
		Gender:   strings.TrimSpace(c.Gender),
		Age:      strings.TrimSpace(c.Age),
		Language: strings.TrimSpace(c.Language),
		Date:     strings.TrimSpace(c.Date),
	}
}

// Filter is one equality predicate
type Filter struct {
	Field string
	Value interface{}
}

// SearchQuery is a conjunction of equality filters, kept in build order
type SearchQuery struct {
	Filters []Filter
}

// Where returns a copy of q with one more filter appended
func (q SearchQuery) Where(field string, value interface{}) SearchQuery {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	return SearchQuery{Filters: append(filters, Filter{Field: field, Value: value})}
}

// Matches reports whether p satisfies every filter in q
func (q SearchQuery) Matches(p *UserProfile) bool {
	for _, f := range q.Filters {
		v, ok := p.FieldValue(f.Field)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}

// BuildSearchQuery starts from the location filter and adds gender, age and
// language in that order when they are supplied.
func BuildSearchQuery(c SearchCriteria) (SearchQuery, error) {
	c = c.Normalize()
	if c.Location == "" || c.Date == "" {
		return SearchQuery{}, ErrMissingCriteria
	}

	q := SearchQuery{}.Where(FieldLocationCity, c.Location)
	if c.Gender != "" {
		q = q.Where(FieldGender, c.Gender)
	}
	if c.Age != "" {
		age, err := strconv.Atoi(c.Age)
		if err != nil {
			return SearchQuery{}, ErrInvalidAgeValue
		}
		q = q.Where(FieldAge, age)
	}
	if c.Language != "" {
		q = q.Where(FieldLanguage, c.Language)
	}
	return q, nil
}

// SearchResponse is returned by POST /api/search
type SearchResponse struct {
	Status  string        `json:"status"`
	Count   int           `json:"count"`
	Matches []MatchResult `json:"matches"`
}

// SearchHistoryResponse is returned by GET /api/search/history
type SearchHistoryResponse struct {
	Status string         `json:"status"`
	Dates  []string       `json:"dates"`
	Recent []SearchRecord `json:"recent,omitempty"`
}

// SearchRecord is one entry of the search history log
type SearchRecord struct {
	UserID     string         `json:"-"`
	Criteria   SearchCriteria `json:"criteria"`
	MatchCount int            `json:"match_count"`
	SearchedAt time.Time      `json:"searched_at"`
}
