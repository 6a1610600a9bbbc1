package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"travelcompanion/app/models"
)

// ErrUnauthenticated is returned when an operation needs a caller identity
var ErrUnauthenticated = errors.New("user not authenticated")

// recentSearchLimit bounds the history log returned next to the dates
const recentSearchLimit = 20

// SearchRecorder keeps a log of search attempts
type SearchRecorder interface {
	RecordSearch(ctx context.Context, rec models.SearchRecord) error
	RecentSearches(ctx context.Context, userID string, limit int) ([]models.SearchRecord, error)
}

// SearchService runs criteria searches over the profile store
type SearchService struct {
	profiles ProfileStore
	recorder SearchRecorder
	now      func() time.Time
}

// NewSearchService creates a search service. recorder may be nil.
func NewSearchService(profiles ProfileStore, recorder SearchRecorder) *SearchService {
	return &SearchService{
		profiles: profiles,
		recorder: recorder,
		now:      time.Now,
	}
}

// Search returns every profile matching the criteria and records the search
// date on the caller's profile. Validation happens before any store access.
func (s *SearchService) Search(ctx context.Context, callerID string, criteria models.SearchCriteria) ([]models.MatchResult, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	criteria = criteria.Normalize()
	query, err := models.BuildSearchQuery(criteria)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profiles.Find(ctx, query)
	if err != nil {
		log.Printf("❌ Search failed for %s: %v", callerID, err)
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	matches := make([]models.MatchResult, 0, len(profiles))
	for _, p := range profiles {
		matches = append(matches, models.NewMatchResult(p))
	}

	// The results are already computed; a lost date entry is logged only
	if err := s.profiles.AppendSearchDate(ctx, callerID, criteria.Date); err != nil {
		log.Printf("⚠️ Failed to record search date for %s: %v", callerID, err)
	}

	if s.recorder != nil {
		rec := models.SearchRecord{
			UserID:     callerID,
			Criteria:   criteria,
			MatchCount: len(matches),
			SearchedAt: s.now().UTC(),
		}
		if err := s.recorder.RecordSearch(ctx, rec); err != nil {
			log.Printf("⚠️ Failed to log search for %s: %v", callerID, err)
		}
	}

	log.Printf("🔍 Search by %s in %s returned %d matches", callerID, criteria.Location, len(matches))
	return matches, nil
}

// History returns the caller's search dates in call order and, when a
// recorder is configured, the most recent search log entries
func (s *SearchService) History(ctx context.Context, callerID string) (*models.SearchHistoryResponse, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	profile, err := s.profiles.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}

	resp := &models.SearchHistoryResponse{
		Status: "success",
		Dates:  append([]string{}, profile.SearchDates...),
	}
	if s.recorder != nil {
		recent, err := s.recorder.RecentSearches(ctx, callerID, recentSearchLimit)
		if err != nil {
			log.Printf("⚠️ Failed to read search log for %s: %v", callerID, err)
		} else {
			resp.Recent = recent
		}
	}
	return resp, nil
}
