package companion

import (
	"context"
	"errors"
	"net/http"

	"travelcompanion/app/models"
)

// ErrSignin is the only message shown for rejected credentials
var ErrSignin = errors.New("invalid email or password")

// AuthBackend exchanges credentials for an identity
type AuthBackend interface {
	Signup(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signin(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

// SignUp registers and moves the navigator to profile creation
func SignUp(ctx context.Context, backend AuthBackend, nav *Navigator, email, password string) (Screen, error) {
	if nav.Current() != ScreenSignUp {
		if _, err := nav.Dispatch(OpenSignUp{}); err != nil {
			return nav.Current(), err
		}
	}

	resp, err := backend.Signup(ctx, email, password)
	if err != nil {
		return nav.Current(), err
	}
	return nav.Dispatch(SignedUp{UserID: resp.UserID, Token: resp.Token})
}

// SignIn exchanges credentials and routes to home or profile creation
func SignIn(ctx context.Context, backend AuthBackend, nav *Navigator, email, password string) (Screen, error) {
	if nav.Current() != ScreenSignIn {
		if _, err := nav.Dispatch(OpenSignIn{}); err != nil {
			return nav.Current(), err
		}
	}

	resp, err := backend.Signin(ctx, email, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nav.Current(), ErrSignin
		}
		return nav.Current(), err
	}
	return nav.Dispatch(SignedIn{UserID: resp.UserID, Token: resp.Token, HasProfile: resp.HasProfile})
}
