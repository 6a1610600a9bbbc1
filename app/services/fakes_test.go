package services

import (
	"context"
	"errors"
	"sync"

	"travelcompanion/app/models"
)

var errStoreDown = errors.New("store unavailable")

// countingStore wraps a ProfileStore, counts calls and can fail on demand
type countingStore struct {
	ProfileStore
	mu         sync.Mutex
	calls      int
	failFind   bool
	failStub   bool
	failUpsert bool
	failAppend bool
	failGet    bool
}

func (s *countingStore) hit() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *countingStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *countingStore) CreateStub(ctx context.Context, userID, email string) error {
	s.hit()
	if s.failStub {
		return errStoreDown
	}
	return s.ProfileStore.CreateStub(ctx, userID, email)
}

func (s *countingStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	s.hit()
	if s.failGet {
		return nil, errStoreDown
	}
	return s.ProfileStore.Get(ctx, userID)
}

func (s *countingStore) Upsert(ctx context.Context, userID string, update models.ProfileUpdate) error {
	s.hit()
	if s.failUpsert {
		return errStoreDown
	}
	return s.ProfileStore.Upsert(ctx, userID, update)
}

func (s *countingStore) Find(ctx context.Context, query models.SearchQuery) ([]models.UserProfile, error) {
	s.hit()
	if s.failFind {
		return nil, errStoreDown
	}
	return s.ProfileStore.Find(ctx, query)
}

func (s *countingStore) AppendSearchDate(ctx context.Context, userID, date string) error {
	s.hit()
	if s.failAppend {
		return errStoreDown
	}
	return s.ProfileStore.AppendSearchDate(ctx, userID, date)
}

type fakeCompletion struct {
	mu       sync.Mutex
	requests []CompletionRequest
	reply    string
	err      error
}

func (f *fakeCompletion) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []models.SearchRecord
	err     error
}

func (f *fakeRecorder) RecordSearch(_ context.Context, rec models.SearchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRecorder) RecentSearches(_ context.Context, userID string, limit int) ([]models.SearchRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SearchRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

type fakeBackup struct {
	mu             sync.Mutex
	sessions       map[string]models.Session
	failDeactivate bool
}

func newFakeBackup() *fakeBackup {
	return &fakeBackup{sessions: make(map[string]models.Session)}
}

func (b *fakeBackup) SaveSession(_ context.Context, s models.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[s.SessionID] = s
	return nil
}

func (b *fakeBackup) LoadSession(_ context.Context, sessionID string) (*models.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (b *fakeBackup) DeactivateSession(_ context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failDeactivate {
		return errStoreDown
	}
	if s, ok := b.sessions[sessionID]; ok {
		s.IsActive = false
		b.sessions[sessionID] = s
	}
	return nil
}

// seedProfile creates a complete profile directly in the store
func seedProfile(store ProfileStore, id, city, gender string, age int, language string) {
	ctx := context.Background()
	_ = store.CreateStub(ctx, id, id+"@example.com")
	_ = store.Upsert(ctx, id, models.ProfileUpdate{
		FirstName: "First-" + id,
		LastName:  "Last-" + id,
		Age:       age,
		Gender:    gender,
		Language:  language,
		Location:  &models.Location{City: city},
	})
}
