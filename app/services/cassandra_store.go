package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelcompanion/app/models"

	"github.com/gocql/gocql"
)

// CassandraSessionBackup keeps a durable copy of sessions
type CassandraSessionBackup struct {
	session *gocql.Session
}

func NewCassandraSessionBackup(session *gocql.Session) *CassandraSessionBackup {
	return &CassandraSessionBackup{session: session}
}

func (b *CassandraSessionBackup) SaveSession(ctx context.Context, s models.Session) error {
	err := b.session.Query(`
		INSERT INTO sessions (session_id, user_id, email, is_active, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.SessionID, s.UserID, s.Email, s.IsActive, s.CreatedAt, s.ExpiresAt).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to store session in Cassandra: %w", err)
	}
	return nil
}

func (b *CassandraSessionBackup) LoadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	s := models.Session{SessionID: sessionID}
	err := b.session.Query(`
		SELECT user_id, email, is_active, created_at, expires_at
		FROM sessions
		WHERE session_id = ?
	`, sessionID).WithContext(ctx).Scan(&s.UserID, &s.Email, &s.IsActive, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from Cassandra: %w", err)
	}
	return &s, nil
}

func (b *CassandraSessionBackup) DeactivateSession(ctx context.Context, sessionID string) error {
	err := b.session.Query(`UPDATE sessions SET is_active = false WHERE session_id = ?`, sessionID).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to deactivate session in Cassandra: %w", err)
	}
	return nil
}

// CassandraSearchHistory records every search a user runs
type CassandraSearchHistory struct {
	session *gocql.Session
}

func NewCassandraSearchHistory(session *gocql.Session) *CassandraSearchHistory {
	return &CassandraSearchHistory{session: session}
}

func (h *CassandraSearchHistory) RecordSearch(ctx context.Context, rec models.SearchRecord) error {
	err := h.session.Query(`
		INSERT INTO search_history (user_id, searched_at, location, gender, age, language, travel_date, match_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.UserID, rec.SearchedAt, rec.Criteria.Location, rec.Criteria.Gender, rec.Criteria.Age,
		rec.Criteria.Language, rec.Criteria.Date, rec.MatchCount).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

func (h *CassandraSearchHistory) RecentSearches(ctx context.Context, userID string, limit int) ([]models.SearchRecord, error) {
	iter := h.session.Query(`
		SELECT searched_at, location, gender, age, language, travel_date, match_count
		FROM search_history
		WHERE user_id = ?
		LIMIT ?
	`, userID, limit).WithContext(ctx).Iter()

	var (
		records    []models.SearchRecord
		searchedAt time.Time
		c          models.SearchCriteria
		matchCount int
	)
	for iter.Scan(&searchedAt, &c.Location, &c.Gender, &c.Age, &c.Language, &c.Date, &matchCount) {
		records = append(records, models.SearchRecord{
			UserID:     userID,
			Criteria:   c,
			MatchCount: matchCount,
			SearchedAt: searchedAt,
		})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	return records, nil
}
