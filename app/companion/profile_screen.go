package companion

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"travelcompanion/app/models"
)

var (
	ErrAgeNotNumber = errors.New("age must be a number")
	// ErrProfileSubmit is shown for any failed profile write
	ErrProfileSubmit = errors.New("error creating profile, please try again")
)

// ProfileBackend writes the caller's profile
type ProfileBackend interface {
	CreateProfile(ctx context.Context, req models.CreateProfileRequest) (*models.UserProfile, error)
}

// ProfileForm holds the raw inputs of the create-profile screen
type ProfileForm struct {
	FirstName string
	LastName  string
	Age       string
	Gender    string
	Language  string
	Hobbies   string
	Bio       string
	Country   string
	State     string
	City      string
}

// Request validates the form and converts it to a request body
func (f ProfileForm) Request() (models.CreateProfileRequest, error) {
	req := models.CreateProfileRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Gender:    f.Gender,
		Language:  f.Language,
		Hobbies:   f.Hobbies,
		Bio:       f.Bio,
		Location:  models.Location{Country: f.Country, State: f.State, City: f.City},
	}

	if age := strings.TrimSpace(f.Age); age != "" {
		n, err := strconv.Atoi(age)
		if err != nil {
			return models.CreateProfileRequest{}, ErrAgeNotNumber
		}
		req.Age = n
	}
	if _, err := req.Validate(); err != nil {
		return models.CreateProfileRequest{}, err
	}
	return req, nil
}

// SubmitProfile validates locally, then writes through the backend and moves
// the navigator to home
func SubmitProfile(ctx context.Context, backend ProfileBackend, nav *Navigator, form ProfileForm) (*models.UserProfile, error) {
	req, err := form.Request()
	if err != nil {
		return nil, err
	}

	profile, err := backend.CreateProfile(ctx, req)
	if err != nil {
		log.Printf("profile request failed: %v", err)
		return nil, ErrProfileSubmit
	}
	if _, err := nav.Dispatch(ProfileCreated{}); err != nil {
		return profile, err
	}
	return profile, nil
}
