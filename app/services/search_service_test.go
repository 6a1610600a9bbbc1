package services

import (
	"context"
	"testing"

	"travelcompanion/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture() (*countingStore, *fakeRecorder, *SearchService) {
	mem := NewMemoryProfileStore()
	seedProfile(mem, "caller", "Lisbon", "female", 30, "Portuguese")
	seedProfile(mem, "p1", "Paris", "female", 28, "French")
	seedProfile(mem, "p2", "Paris", "male", 28, "French")
	seedProfile(mem, "p3", "Paris", "female", 35, "English")
	seedProfile(mem, "p4", "Rome", "female", 28, "French")

	store := &countingStore{ProfileStore: mem}
	recorder := &fakeRecorder{}
	return store, recorder, NewSearchService(store, recorder)
}

func matchIDs(matches []models.MatchResult) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestSearchLocationOnlyReturnsEveryProfileInCity(t *testing.T) {
	_, _, svc := newSearchFixture()

	matches, err := svc.Search(context.Background(), "caller", models.SearchCriteria{
		Location: "Paris",
		Date:     "2024-07-01",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, matchIDs(matches))
}

func TestSearchIsConjunctionOfFilters(t *testing.T) {
	_, _, svc := newSearchFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria models.SearchCriteria
		want     []string
	}{
		{"gender", models.SearchCriteria{Location: "Paris", Gender: "female", Date: "d"}, []string{"p1", "p3"}},
		{"gender and age", models.SearchCriteria{Location: "Paris", Gender: "female", Age: "28", Date: "d"}, []string{"p1"}},
		{"language", models.SearchCriteria{Location: "Paris", Language: "French", Date: "d"}, []string{"p1", "p2"}},
		{"all filters", models.SearchCriteria{Location: "Paris", Gender: "male", Age: "28", Language: "French", Date: "d"}, []string{"p2"}},
		{"no match", models.SearchCriteria{Location: "Paris", Age: "99", Date: "d"}, []string{}},
		{"unknown city", models.SearchCriteria{Location: "Oslo", Date: "d"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := svc.Search(ctx, "caller", tt.criteria)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, matchIDs(matches))
			for _, m := range matches {
				assert.Equal(t, "Paris", m.Location.City)
			}
		})
	}
}

func TestSearchUnauthenticatedNeverTouchesStore(t *testing.T) {
	store, recorder, svc := newSearchFixture()
	before := store.Calls()

	_, err := svc.Search(context.Background(), "", models.SearchCriteria{Location: "Paris", Date: "2024-07-01"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, before, store.Calls())
	assert.Empty(t, recorder.records)
}

func TestSearchValidationNeverTouchesStore(t *testing.T) {
	store, _, svc := newSearchFixture()
	before := store.Calls()
	ctx := context.Background()

	_, err := svc.Search(ctx, "caller", models.SearchCriteria{Date: "2024-07-01"})
	assert.ErrorIs(t, err, models.ErrMissingCriteria)

	_, err = svc.Search(ctx, "caller", models.SearchCriteria{Location: "Paris"})
	assert.ErrorIs(t, err, models.ErrMissingCriteria)

	_, err = svc.Search(ctx, "caller", models.SearchCriteria{Location: "Paris", Age: "old", Date: "d"})
	assert.ErrorIs(t, err, models.ErrInvalidAgeValue)

	assert.Equal(t, before, store.Calls())
	caller, err := store.ProfileStore.Get(ctx, "caller")
	require.NoError(t, err)
	assert.Empty(t, caller.SearchDates)
}

func TestSearchAppendsDatesInCallOrder(t *testing.T) {
	store, _, svc := newSearchFixture()
	ctx := context.Background()

	dates := []string{"2024-07-01", "2024-08-15", "2024-07-01", "2025-01-02"}
	for _, d := range dates {
		_, err := svc.Search(ctx, "caller", models.SearchCriteria{Location: "Oslo", Date: d})
		require.NoError(t, err)
	}

	caller, err := store.ProfileStore.Get(ctx, "caller")
	require.NoError(t, err)
	assert.Equal(t, dates, caller.SearchDates)
}

func TestSearchStoreFailure(t *testing.T) {
	store, _, svc := newSearchFixture()
	store.failFind = true
	ctx := context.Background()

	_, err := svc.Search(ctx, "caller", models.SearchCriteria{Location: "Paris", Date: "2024-07-01"})
	assert.ErrorIs(t, err, errStoreDown)

	caller, err := store.ProfileStore.Get(ctx, "caller")
	require.NoError(t, err)
	assert.Empty(t, caller.SearchDates)
}

func TestSearchDateAppendFailureKeepsResults(t *testing.T) {
	store, _, svc := newSearchFixture()
	store.failAppend = true

	matches, err := svc.Search(context.Background(), "caller", models.SearchCriteria{Location: "Paris", Date: "d"})
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestSearchIncludesCallerAndHidesPrivateFields(t *testing.T) {
	_, _, svc := newSearchFixture()

	matches, err := svc.Search(context.Background(), "caller", models.SearchCriteria{Location: "Lisbon", Date: "d"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "caller", matches[0].ID)
}

func TestSearchRecordsHistory(t *testing.T) {
	_, recorder, svc := newSearchFixture()
	ctx := context.Background()

	_, err := svc.Search(ctx, "caller", models.SearchCriteria{Location: " Paris ", Gender: "female", Date: "2024-07-01"})
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, "caller", rec.UserID)
	assert.Equal(t, "Paris", rec.Criteria.Location)
	assert.Equal(t, 2, rec.MatchCount)

	history, err := svc.History(ctx, "caller")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-07-01"}, history.Dates)
	assert.Len(t, history.Recent, 1)
}

func TestSearchRecorderFailureIsIgnored(t *testing.T) {
	_, recorder, svc := newSearchFixture()
	recorder.err = errStoreDown
	ctx := context.Background()

	_, err := svc.Search(ctx, "caller", models.SearchCriteria{Location: "Paris", Date: "d"})
	require.NoError(t, err)

	history, err := svc.History(ctx, "caller")
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, history.Dates)
	assert.Empty(t, history.Recent)
}

func TestHistoryRequiresCaller(t *testing.T) {
	_, _, svc := newSearchFixture()
	_, err := svc.History(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
