package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"travelcompanion/app/models"
	"travelcompanion/app/utils"

	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 6

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles signup, signin and token validation
type AuthService struct {
	credentials CredentialStore
	profiles    ProfileStore
	sessions    *SessionService
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewAuthService creates a new auth service instance
func NewAuthService(credentials CredentialStore, profiles ProfileStore, sessions *SessionService, jwtSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		credentials: credentials,
		profiles:    profiles,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

func normalizeCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Signup registers a new user. The profile stub exists before it returns;
// if the stub cannot be written the credential is removed again.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		return nil, err
	}

	if err := s.profiles.CreateStub(ctx, cred.UserID, email); err != nil {
		log.Printf("❌ Profile stub failed for %s, rolling back signup: %v", cred.UserID, err)
		if delErr := s.credentials.Delete(ctx, cred.UserID); delErr != nil {
			log.Printf("❌ Failed to remove credential %s: %v", cred.UserID, delErr)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	resp, err := s.issue(ctx, cred.UserID, email, false)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ User signed up: %s", cred.UserID)
	return resp, nil
}

// Signin verifies the credential and reports whether the profile is complete
func (s *AuthService) Signin(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}

	cred, err := s.credentials.FindByEmail(ctx, email)
	if errors.Is(err, ErrCredentialNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(cred.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	hasProfile := false
	profile, err := s.profiles.Get(ctx, cred.UserID)
	if err != nil {
		log.Printf("⚠️ Profile lookup failed at signin for %s: %v", cred.UserID, err)
	} else {
		hasProfile = profile.IsComplete()
	}

	resp, err := s.issue(ctx, cred.UserID, email, hasProfile)
	if err != nil {
		return nil, err
	}
	log.Printf("🔑 User signed in: %s (profile complete: %t)", cred.UserID, hasProfile)
	return resp, nil
}

// Signout ends the session
func (s *AuthService) Signout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrUnauthenticated
	}
	return s.sessions.EndSession(ctx, sessionID)
}

// Authenticate validates a token and its session
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	claims, err := utils.ValidateJWTToken(s.jwtSecret, token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetSession(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *AuthService) issue(ctx context.Context, userID, email string, hasProfile bool) (*models.AuthResponse, error) {
	session, err := s.sessions.CreateSession(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	token, err := utils.GenerateJWTToken(s.jwtSecret, userID, session.SessionID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{
		Status:     "success",
		UserID:     userID,
		Token:      token,
		HasProfile: hasProfile,
	}, nil
}
