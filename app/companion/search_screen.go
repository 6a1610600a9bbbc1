package companion

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"travelcompanion/app/models"
)

// Alerts shown by the search screen
var (
	AlertMissingCriteria = Alert{Title: "Error", Message: "Please enter a location and a date."}
	AlertNotSignedIn     = Alert{Title: "Error", Message: "You must be signed in to search."}
	AlertNoMatches       = Alert{Title: "No Matches", Message: "No travellers found for that search."}
	AlertSearchFailed    = Alert{Title: "Error", Message: "There was an issue fetching the matches."}
)

// Alert is a blocking message shown to the user
type Alert struct {
	Title   string
	Message string
}

// SearchBackend runs criteria searches
type SearchBackend interface {
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.MatchResult, error)
}

// SearchState is the whole state of the search screen
type SearchState struct {
	Criteria models.SearchCriteria
	Matches  []models.MatchResult
	Loading  bool
	Alert    *Alert
}

// SearchAction is an input to UpdateSearch
type SearchAction interface {
	isSearchAction()
}

type (
	CriteriaChanged struct{ Criteria models.SearchCriteria }
	SearchStarted   struct{}
	SearchFinished  struct{ Matches []models.MatchResult }
	// SearchRejected shows an alert without touching the results
	SearchRejected struct{ Alert Alert }
	AlertDismissed struct{}
)

func (CriteriaChanged) isSearchAction() {}
func (SearchStarted) isSearchAction()   {}
func (SearchFinished) isSearchAction()  {}
func (SearchRejected) isSearchAction()  {}
func (AlertDismissed) isSearchAction()  {}

// UpdateSearch returns the next search state. s is not modified.
func UpdateSearch(s SearchState, a SearchAction) SearchState {
	switch act := a.(type) {
	case CriteriaChanged:
		s.Criteria = act.Criteria
	case SearchStarted:
		s.Loading = true
		s.Alert = nil
	case SearchFinished:
		s.Loading = false
		s.Matches = append([]models.MatchResult{}, act.Matches...)
		if len(act.Matches) == 0 {
			alert := AlertNoMatches
			s.Alert = &alert
		}
	case SearchRejected:
		s.Loading = false
		alert := act.Alert
		s.Alert = &alert
	case AlertDismissed:
		s.Alert = nil
	}
	return s
}

// SearchScreen runs the search flow against a backend
type SearchScreen struct {
	mu       sync.Mutex
	state    SearchState
	backend  SearchBackend
	signedIn func() bool
}

// NewSearchScreen creates a search screen. signedIn reports whether a caller
// identity is available.
func NewSearchScreen(backend SearchBackend, signedIn func() bool) *SearchScreen {
	return &SearchScreen{backend: backend, signedIn: signedIn}
}

func (s *SearchScreen) dispatch(a SearchAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = UpdateSearch(s.state, a)
}

func (s *SearchScreen) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Matches = append([]models.MatchResult(nil), s.state.Matches...)
	return st
}

func (s *SearchScreen) SetCriteria(c models.SearchCriteria) {
	s.dispatch(CriteriaChanged{Criteria: c})
}

func (s *SearchScreen) DismissAlert() {
	s.dispatch(AlertDismissed{})
}

// Search validates locally and only then calls the backend
func (s *SearchScreen) Search(ctx context.Context) {
	s.mu.Lock()
	criteria := s.state.Criteria.Normalize()
	s.mu.Unlock()

	if criteria.Location == "" || criteria.Date == "" {
		s.dispatch(SearchRejected{Alert: AlertMissingCriteria})
		return
	}
	if s.signedIn == nil || !s.signedIn() {
		s.dispatch(SearchRejected{Alert: AlertNotSignedIn})
		return
	}

	s.dispatch(SearchStarted{})
	matches, err := s.backend.Search(ctx, criteria)
	if err != nil {
		log.Printf("search request failed: %v", err)
		s.dispatch(SearchRejected{Alert: AlertSearchFailed})
		return
	}
	s.dispatch(SearchFinished{Matches: matches})
}

// FormatMatch renders one result with its values filled in
func FormatMatch(m models.MatchResult) []string {
	lines := []string{fmt.Sprintf("Name: %s", strings.TrimSpace(m.FirstName+" "+m.LastName))}
	if m.Age > 0 {
		lines = append(lines, "Age: "+strconv.Itoa(m.Age))
	}
	if m.Gender != "" {
		lines = append(lines, "Gender: "+m.Gender)
	}
	if m.Language != "" {
		lines = append(lines, "Language: "+m.Language)
	}
	if m.Location != nil {
		parts := []string{}
		for _, p := range []string{m.Location.City, m.Location.State, m.Location.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, "Location: "+strings.Join(parts, ", "))
		}
	}
	if m.Hobbies != "" {
		lines = append(lines, "Hobbies: "+m.Hobbies)
	}
	if m.Bio != "" {
		lines = append(lines, "Bio: "+m.Bio)
	}
	return lines
}
