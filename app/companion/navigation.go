package companion

import (
	"errors"
	"fmt"
	"sync"
)

// Screen is one named state of the navigation shell
type Screen string

const (
	ScreenWelcome       Screen = "welcome"
	ScreenSignUp        Screen = "signup"
	ScreenSignIn        Screen = "signin"
	ScreenCreateProfile Screen = "create-profile"
	ScreenHome          Screen = "home"
	ScreenSearch        Screen = "search"
	ScreenChat          Screen = "chat"
)

// ErrInvalidTransition is returned when an event is not allowed on the current screen
var ErrInvalidTransition = errors.New("invalid navigation transition")

// Session is the identity threaded through navigation after sign-in
type Session struct {
	UserID     string
	Token      string
	HasProfile bool
}

// Event is a typed navigation input
type Event interface {
	isEvent()
}

type (
	// OpenSignUp leaves the welcome screen for sign-up
	OpenSignUp struct{}
	// OpenSignIn leaves the welcome or sign-up screen for sign-in
	OpenSignIn struct{}
	// SignedUp carries the new identity; a fresh account has no profile
	SignedUp struct {
		UserID string
		Token  string
	}
	// SignedIn carries the identity and the profile-completeness flag
	SignedIn struct {
		UserID     string
		Token      string
		HasProfile bool
	}
	ProfileCreated struct{}
	OpenSearch     struct{}
	OpenChat       struct{}
	// Back returns to the previous hub screen
	Back      struct{}
	SignedOut struct{}
)

func (OpenSignUp) isEvent()     {}
func (OpenSignIn) isEvent()     {}
func (SignedUp) isEvent()       {}
func (SignedIn) isEvent()       {}
func (ProfileCreated) isEvent() {}
func (OpenSearch) isEvent()     {}
func (OpenChat) isEvent()       {}
func (Back) isEvent()           {}
func (SignedOut) isEvent()      {}

// NavState is the current screen plus the session, if any
type NavState struct {
	Screen  Screen
	Session *Session
}

// Transition computes the next state. It never mutates s.
func Transition(s NavState, e Event) (NavState, error) {
	invalid := func() (NavState, error) {
		return s, fmt.Errorf("%w: %T on %s", ErrInvalidTransition, e, s.Screen)
	}

	switch ev := e.(type) {
	case OpenSignUp:
		if s.Screen == ScreenWelcome || s.Screen == ScreenSignIn {
			return NavState{Screen: ScreenSignUp}, nil
		}
	case OpenSignIn:
		if s.Screen == ScreenWelcome || s.Screen == ScreenSignUp {
			return NavState{Screen: ScreenSignIn}, nil
		}
	case SignedUp:
		if s.Screen == ScreenSignUp && ev.UserID != "" {
			return NavState{
				Screen:  ScreenCreateProfile,
				Session: &Session{UserID: ev.UserID, Token: ev.Token},
			}, nil
		}
	case SignedIn:
		if s.Screen == ScreenSignIn && ev.UserID != "" {
			next := ScreenCreateProfile
			if ev.HasProfile {
				next = ScreenHome
			}
			return NavState{
				Screen:  next,
				Session: &Session{UserID: ev.UserID, Token: ev.Token, HasProfile: ev.HasProfile},
			}, nil
		}
	case ProfileCreated:
		if s.Screen == ScreenCreateProfile && s.Session != nil {
			session := *s.Session
			session.HasProfile = true
			return NavState{Screen: ScreenHome, Session: &session}, nil
		}
	case OpenSearch:
		if s.Screen == ScreenHome {
			return NavState{Screen: ScreenSearch, Session: s.Session}, nil
		}
	case OpenChat:
		if s.Screen == ScreenHome {
			return NavState{Screen: ScreenChat, Session: s.Session}, nil
		}
	case Back:
		switch s.Screen {
		case ScreenSearch, ScreenChat:
			return NavState{Screen: ScreenHome, Session: s.Session}, nil
		case ScreenSignUp, ScreenSignIn:
			return NavState{Screen: ScreenWelcome}, nil
		}
	case SignedOut:
		if s.Session != nil {
			return NavState{Screen: ScreenWelcome}, nil
		}
	}
	return invalid()
}

// Navigator holds the current navigation state for one app session
type Navigator struct {
	mu    sync.RWMutex
	state NavState
}

// NewNavigator starts on the welcome screen
func NewNavigator() *Navigator {
	return &Navigator{state: NavState{Screen: ScreenWelcome}}
}

// ResumeSession starts a navigator for an identity restored from a previous
// sign-in, on home or profile creation depending on HasProfile
func ResumeSession(session Session) *Navigator {
	screen := ScreenCreateProfile
	if session.HasProfile {
		screen = ScreenHome
	}
	return &Navigator{state: NavState{Screen: screen, Session: &session}}
}

// Dispatch applies e. On error the state is unchanged.
func (n *Navigator) Dispatch(e Event) (Screen, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	next, err := Transition(n.state, e)
	if err != nil {
		return n.state.Screen, err
	}
	n.state = next
	return next.Screen, nil
}

func (n *Navigator) Current() Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state.Screen
}

// Session returns a copy of the signed-in identity
func (n *Navigator) Session() (Session, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.state.Session == nil {
		return Session{}, false
	}
	return *n.state.Session, true
}
