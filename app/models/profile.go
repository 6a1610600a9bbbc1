package models

import (
	"errors"
	"strings"
	"time"
)

// Accepted traveller age range, inclusive
const (
	MinTravellerAge = 18
	MaxTravellerAge = 120
)

var (
	ErrMissingProfileFields = errors.New("first name, last name, age, gender, language and city are required")
	ErrAgeOutOfRange        = errors.New("age must be between 18 and 120")
)

// Location is where a traveller is based
type Location struct {
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
}

// UserProfile is the single document kept per user in the profile store.
// ID is assigned once at signup and never changes.
type UserProfile struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	FirstName   string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Age         int       `json:"age,omitempty" bson:"age,omitempty"`
	Gender      string    `json:"gender,omitempty" bson:"gender,omitempty"`
	Language    string    `json:"language,omitempty" bson:"language,omitempty"`
	Hobbies     string    `json:"hobbies,omitempty" bson:"hobbies,omitempty"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Location    *Location `json:"location,omitempty" bson:"location,omitempty"`
	SearchDates []string  `json:"search_dates" bson:"search_dates"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// IsComplete reports whether first name, last name and age are all set.
// Sign-in uses it to pick the next screen.
func (p *UserProfile) IsComplete() bool {
	return p != nil && p.FirstName != "" && p.LastName != "" && p.Age > 0
}

// FieldValue returns the stored value of a filterable field and whether it is set.
func (p *UserProfile) FieldValue(field string) (interface{}, bool) {
	switch field {
	case FieldLocationCity:
		if p.Location == nil || p.Location.City == "" {
			return nil, false
		}
		return p.Location.City, true
	case FieldGender:
		return p.Gender, p.Gender != ""
	case FieldAge:
		return p.Age, p.Age != 0
	case FieldLanguage:
		return p.Language, p.Language != ""
	}
	return nil, false
}

// ProfileUpdate is the set of fields written by profile creation
type ProfileUpdate struct {
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Age       int       `json:"age" bson:"age"`
	Gender    string    `json:"gender" bson:"gender"`
	Language  string    `json:"language" bson:"language"`
	Hobbies   string    `json:"hobbies,omitempty" bson:"hobbies,omitempty"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Location  *Location `json:"location" bson:"location"`
}

// CreateProfileRequest is the body of POST /api/profile
type CreateProfileRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Language  string   `json:"language"`
	Hobbies   string   `json:"hobbies,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Location  Location `json:"location"`
}

// Validate trims the request and checks required fields and the age range.
// It returns the update to write.
func (r CreateProfileRequest) Validate() (ProfileUpdate, error) {
	u := ProfileUpdate{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Age:       r.Age,
		Gender:    strings.TrimSpace(r.Gender),
		Language:  strings.TrimSpace(r.Language),
		Hobbies:   strings.TrimSpace(r.Hobbies),
		Bio:       strings.TrimSpace(r.Bio),
		Location: &Location{
			Country: strings.TrimSpace(r.Location.Country),
			State:   strings.TrimSpace(r.Location.State),
			City:    strings.TrimSpace(r.Location.City),
		},
	}
	if u.FirstName == "" || u.LastName == "" || u.Gender == "" || u.Language == "" || u.Location.City == "" || r.Age == 0 {
		return ProfileUpdate{}, ErrMissingProfileFields
	}
	if r.Age < MinTravellerAge || r.Age > MaxTravellerAge {
		return ProfileUpdate{}, ErrAgeOutOfRange
	}
	return u, nil
}

// MatchResult is the read-only view of a profile returned by a search.
// Email and search history never leave the store through it.
type MatchResult struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Age       int       `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Language  string    `json:"language,omitempty"`
	Hobbies   string    `json:"hobbies,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

// NewMatchResult projects a stored profile into a MatchResult
func NewMatchResult(p UserProfile) MatchResult {
	return MatchResult{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Age:       p.Age,
		Gender:    p.Gender,
		Language:  p.Language,
		Hobbies:   p.Hobbies,
		Bio:       p.Bio,
		Location:  p.Location,
	}
}
