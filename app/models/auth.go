package models

import "time"

// Credential is the auth record for one user. It lives in its own collection
// so the password hash is never part of the profile document.
type Credential struct {
	UserID       string    `json:"user_id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Session represents a signed-in device
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session is active and not yet expired
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.IsActive && now.Before(s.ExpiresAt)
}

// CredentialsRequest is the body of signup and signin
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and signin
type AuthResponse struct {
	Status     string `json:"status"`
	UserID     string `json:"user_id"`
	Token      string `json:"token"`
	HasProfile bool   `json:"has_profile"`
}
