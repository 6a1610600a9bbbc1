package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"travelcompanion/app/models"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionCache is the primary session storage. redis.Service satisfies it.
type SessionCache interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
}

// SessionBackup is the durable copy consulted when the cache misses
type SessionBackup interface {
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeactivateSession(ctx context.Context, sessionID string) error
}

// SessionService handles session management using the cache with an
// optional backup store
type SessionService struct {
	cache  SessionCache
	backup SessionBackup
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a new session service instance. backup may be nil.
func NewSessionService(cache SessionCache, backup SessionBackup, ttl time.Duration) *SessionService {
	return &SessionService{
		cache:  cache,
		backup: backup,
		ttl:    ttl,
		now:    time.Now,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// revokedKey marks a signed-out session so the backup cannot revive it
func revokedKey(sessionID string) string {
	return fmt.Sprintf("session_revoked:%s", sessionID)
}

// CreateSession creates a new session and stores it in the cache and backup
func (s *SessionService) CreateSession(ctx context.Context, userID, email string) (*models.Session, error) {
	now := s.now().UTC()
	session := models.Session{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.cache.Set(sessionKey(session.SessionID), session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session in cache: %w", err)
	}

	if s.backup != nil {
		if err := s.backup.SaveSession(ctx, session); err != nil {
			log.Printf("⚠️ Failed to store session backup: %v", err)
		}
	}

	log.Printf("✅ Session created: %s", session.SessionID)
	return &session, nil
}

// GetSession retrieves a session from the cache with backup fallback
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	now := s.now()

	var session models.Session
	if err := s.cache.Get(sessionKey(sessionID), &session); err == nil {
		if session.Valid(now) {
			return &session, nil
		}
		_ = s.cache.Delete(sessionKey(sessionID))
		return nil, ErrSessionExpired
	}

	if s.backup == nil {
		return nil, ErrSessionNotFound
	}

	var revoked bool
	if err := s.cache.Get(revokedKey(sessionID), &revoked); err == nil && revoked {
		return nil, ErrSessionNotFound
	}

	log.Printf("🔄 Session not found in cache, trying backup: %s", sessionID)
	stored, err := s.backup.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	if !stored.Valid(now) {
		return nil, ErrSessionExpired
	}

	// Re-cache for the remaining lifetime
	if err := s.cache.Set(sessionKey(sessionID), stored, stored.ExpiresAt.Sub(now)); err != nil {
		log.Printf("⚠️ Failed to re-cache session %s: %v", sessionID, err)
	}
	return stored, nil
}

// EndSession removes the session from the cache and deactivates the backup
// copy. A revocation marker outlives the session so a stale backup row is
// never re-cached; the call fails only if neither the marker nor the
// deactivation was written.
func (s *SessionService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session from cache: %w", err)
	}
	if s.backup == nil {
		log.Printf("🗑️ Session ended: %s", sessionID)
		return nil
	}

	markErr := s.cache.Set(revokedKey(sessionID), true, s.ttl)
	if markErr != nil {
		log.Printf("⚠️ Failed to store session revocation: %v", markErr)
	}
	if err := s.backup.DeactivateSession(ctx, sessionID); err != nil {
		if markErr != nil {
			return fmt.Errorf("failed to revoke session %s: %w", sessionID, err)
		}
		log.Printf("⚠️ Failed to deactivate session backup: %v", err)
	}
	log.Printf("🗑️ Session ended: %s", sessionID)
	return nil
}
