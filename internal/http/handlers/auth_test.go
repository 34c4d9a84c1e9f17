package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
)

func TestLoginRedirectsToProvider(t *testing.T) {
	auth := &fakeAuthService{enabled: true, loginURL: "https://id.example/authorize?state=s"}
	h := NewAuthHandler(testLogger(t), auth, &fakeSessions{}, "https://edutax.example")

	rec := serve(t, http.MethodGet, "/api/login", "/api/login?returnTo=/courses/brevet-a", "", nil, h.Login)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, auth.loginURL, rec.Header().Get("Location"))
	assert.Equal(t, "/courses/brevet-a", auth.gotReturn)
}

func TestLoginDisabled(t *testing.T) {
	h := NewAuthHandler(testLogger(t), &fakeAuthService{}, &fakeSessions{}, "")

	rec := serve(t, http.MethodGet, "/api/login", "/api/login", "", nil, h.Login)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "login_not_configured", decode[map[string]string](t, rec)["code"])
}

func TestCallbackStoresSession(t *testing.T) {
	sessions := &fakeSessions{}
	auth := &fakeAuthService{enabled: true, user: &types.User{ID: "oidc|9"}, returnTo: "/courses/brevet-b"}
	h := NewAuthHandler(testLogger(t), auth, sessions, "")

	rec := serve(t, http.MethodGet, "/api/callback", "/api/callback?state=s&code=c", "", nil, h.Callback)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/courses/brevet-b", rec.Header().Get("Location"))
	assert.Equal(t, "oidc|9", sessions.loggedIn)
}

func TestCallbackSanitizesReturnTo(t *testing.T) {
	auth := &fakeAuthService{enabled: true, user: &types.User{ID: "u"}, returnTo: "//evil.example"}
	h := NewAuthHandler(testLogger(t), auth, &fakeSessions{}, "")

	rec := serve(t, http.MethodGet, "/api/callback", "/api/callback?state=s&code=c", "", nil, h.Callback)

	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestCallbackFailures(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		auth     *fakeAuthService
		sessions *fakeSessions
		status   int
	}{
		{"missing params", "/api/callback", &fakeAuthService{enabled: true}, &fakeSessions{}, http.StatusBadRequest},
		{"provider error", "/api/callback?error=access_denied", &fakeAuthService{enabled: true}, &fakeSessions{}, http.StatusUnauthorized},
		{"reused state", "/api/callback?state=s&code=c", &fakeAuthService{enabled: true, err: apierr.ErrInvalidLoginState}, &fakeSessions{}, http.StatusBadRequest},
		{"session write", "/api/callback?state=s&code=c", &fakeAuthService{enabled: true, user: &types.User{ID: "u"}}, &fakeSessions{err: errors.New("encode")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(testLogger(t), tc.auth, tc.sessions, "")
			rec := serve(t, http.MethodGet, "/api/callback", tc.target, "", nil, h.Callback)
			assert.Equal(t, tc.status, rec.Code)
			assert.Empty(t, tc.sessions.loggedIn)
		})
	}
}

func TestLogoutClearsSessionAndRedirects(t *testing.T) {
	sessions := &fakeSessions{}
	auth := &fakeAuthService{enabled: true, logoutURL: "https://id.example/logout"}
	h := NewAuthHandler(testLogger(t), auth, sessions, "https://edutax.example/")

	rec := serve(t, http.MethodGet, "/api/logout", "/api/logout", "u1", nil, h.Logout)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, sessions.loggedOut)
	assert.Equal(t, "https://id.example/logout?post_logout_redirect_uri=https://edutax.example/", rec.Header().Get("Location"))
}
