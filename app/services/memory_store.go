package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"travelcompanion/app/models"
	"travelcompanion/redis"
)

// MemoryProfileStore is a ProfileStore kept in process memory.
// Find returns profiles in insertion order.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	order    []string
	profiles map[string]*models.UserProfile
	now      func() time.Time
}

// NewMemoryProfileStore creates an empty in-memory profile store
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]*models.UserProfile),
		now:      time.Now,
	}
}

func (s *MemoryProfileStore) CreateStub(_ context.Context, userID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[userID]; ok {
		return ErrProfileExists
	}
	now := s.now().UTC()
	s.profiles[userID] = &models.UserProfile{
		ID:          userID,
		Email:       email,
		SearchDates: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.order = append(s.order, userID)
	return nil
}

func (s *MemoryProfileStore) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := cloneProfile(p)
	return &cp, nil
}

func (s *MemoryProfileStore) Upsert(_ context.Context, userID string, update models.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	p, ok := s.profiles[userID]
	if !ok {
		p = &models.UserProfile{ID: userID, SearchDates: []string{}, CreatedAt: now}
		s.profiles[userID] = p
		s.order = append(s.order, userID)
	}

	p.FirstName = update.FirstName
	p.LastName = update.LastName
	p.Age = update.Age
	p.Gender = update.Gender
	p.Language = update.Language
	if update.Hobbies != "" {
		p.Hobbies = update.Hobbies
	}
	if update.Bio != "" {
		p.Bio = update.Bio
	}
	if update.Location != nil {
		loc := *update.Location
		p.Location = &loc
	}
	p.UpdatedAt = now
	return nil
}

func (s *MemoryProfileStore) Find(_ context.Context, query models.SearchQuery) ([]models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := []models.UserProfile{}
	for _, id := range s.order {
		p := s.profiles[id]
		if query.Matches(p) {
			profiles = append(profiles, cloneProfile(p))
		}
	}
	return profiles, nil
}

func (s *MemoryProfileStore) AppendSearchDate(_ context.Context, userID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.SearchDates = append(p.SearchDates, date)
	p.UpdatedAt = s.now().UTC()
	return nil
}

func cloneProfile(p *models.UserProfile) models.UserProfile {
	cp := *p
	cp.SearchDates = append([]string{}, p.SearchDates...)
	if p.Location != nil {
		loc := *p.Location
		cp.Location = &loc
	}
	return cp
}

// MemoryCredentialStore is a CredentialStore kept in process memory
type MemoryCredentialStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.Credential
}

// NewMemoryCredentialStore creates an empty in-memory credential store
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{byEmail: make(map[string]models.Credential)}
}

func (s *MemoryCredentialStore) Create(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(cred.Email)
	if _, ok := s.byEmail[key]; ok {
		return ErrEmailExists
	}
	s.byEmail[key] = cred
	return nil
}

func (s *MemoryCredentialStore) FindByEmail(_ context.Context, email string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return &cred, nil
}

func (s *MemoryCredentialStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, cred := range s.byEmail {
		if cred.UserID == userID {
			delete(s.byEmail, email)
			return nil
		}
	}
	return ErrCredentialNotFound
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemorySessionCache is a SessionCache kept in process memory. Values are
// stored as JSON like the Redis service does.
type MemorySessionCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionCache creates an empty in-memory session cache
func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemorySessionCache) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{value: data}
	if expiration > 0 {
		entry.expiresAt = c.now().Add(expiration)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemorySessionCache) Get(key string, dest interface{}) error {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", redis.ErrKeyNotFound, key)
	}
	return json.Unmarshal(entry.value, dest)
}

func (c *MemorySessionCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
