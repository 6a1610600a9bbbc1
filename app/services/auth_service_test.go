package services

import (
	"context"
	"testing"
	"time"

	"travelcompanion/app/models"
	"travelcompanion/app/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTSecret = []byte("auth-service-test-secret")

type authFixture struct {
	creds    *MemoryCredentialStore
	profiles *countingStore
	sessions *SessionService
	auth     *AuthService
}

func newAuthFixture() *authFixture {
	creds := NewMemoryCredentialStore()
	profiles := &countingStore{ProfileStore: NewMemoryProfileStore()}
	sessions := NewSessionService(NewMemorySessionCache(), nil, time.Hour)
	return &authFixture{
		creds:    creds,
		profiles: profiles,
		sessions: sessions,
		auth:     NewAuthService(creds, profiles, sessions, testJWTSecret, time.Hour),
	}
}

func TestSignupCreatesCredentialStubAndToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.auth.Signup(ctx, " Ana@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.UserID)
	assert.False(t, resp.HasProfile)

	profile, err := f.profiles.ProfileStore.Get(ctx, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Empty(t, profile.SearchDates)

	claims, err := utils.ValidateJWTToken(testJWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)

	session, err := f.auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, session.UserID)
}

func TestSignupValidation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "", "secret1")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = f.auth.Signup(ctx, "not-an-email", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = f.auth.Signup(ctx, "ana@example.com", "abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, "ANA@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSignupRollsBackCredentialWhenStubFails(t *testing.T) {
	f := newAuthFixture()
	f.profiles.failStub = true
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "ana@example.com", "secret1")
	require.ErrorIs(t, err, errStoreDown)

	_, err = f.creds.FindByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, ErrCredentialNotFound)

	// Retrying after the store recovers succeeds
	f.profiles.failStub = false
	_, err = f.auth.Signup(ctx, "ana@example.com", "secret1")
	assert.NoError(t, err)
}

func TestSigninHasProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	signup, err := f.auth.Signup(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	resp, err := f.auth.Signin(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, signup.UserID, resp.UserID)
	assert.False(t, resp.HasProfile)

	require.NoError(t, f.profiles.ProfileStore.Upsert(ctx, signup.UserID, models.ProfileUpdate{
		FirstName: "Ana",
		LastName:  "Lee",
		Age:       30,
		Gender:    "female",
		Language:  "Spanish",
		Location:  &models.Location{City: "Madrid"},
	}))

	resp, err = f.auth.Signin(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, resp.HasProfile)
}

func TestSigninProfileReadFailureYieldsFalse(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	f.profiles.failGet = true
	resp, err := f.auth.Signin(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, resp.HasProfile)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.auth.Signin(ctx, "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Signin(ctx, "bob@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignoutInvalidatesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.auth.Signup(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	session, err := f.auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Signout(ctx, session.SessionID))

	_, err = f.auth.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, f.auth.Signout(ctx, ""), ErrUnauthenticated)
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	f := newAuthFixture()

	token, err := utils.GenerateJWTToken([]byte("other-secret"), "u1", "s1", time.Hour)
	require.NoError(t, err)

	_, err = f.auth.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
