package services

import (
	"context"
	"errors"
	"log"

	"travelcompanion/app/models"
)

var (
	ErrMissingFields = models.ErrMissingProfileFields
	ErrInvalidAge    = models.ErrAgeOutOfRange
	// ErrProfileWrite hides the store error of any failed profile write
	ErrProfileWrite = errors.New("profile write failed")
)

// ProfileService validates and writes traveller profiles
type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// CreateProfile validates the request and merges it into the caller's profile
func (s *ProfileService) CreateProfile(ctx context.Context, userID string, req models.CreateProfileRequest) (*models.UserProfile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	update, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Upsert(ctx, userID, update); err != nil {
		log.Printf("❌ Profile write failed for %s: %v", userID, err)
		return nil, ErrProfileWrite
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Profile written but not readable for %s: %v", userID, err)
		return nil, ErrProfileWrite
	}
	log.Printf("👤 Profile saved for %s", userID)
	return profile, nil
}

// GetProfile returns the caller's own profile
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.profiles.Get(ctx, userID)
}
