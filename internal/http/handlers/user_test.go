package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/edutax/edutax-backend/internal/domain"
)

func TestGetAuthUser(t *testing.T) {
	email := "ada@example.com"
	svc := &fakeUserService{users: map[string]*types.User{"u1": {ID: "u1", Email: &email}}}
	h := NewUserHandler(testLogger(t), svc)

	rec := serve(t, http.MethodGet, "/api/auth/user", "/api/auth/user", "u1", nil, h.GetAuthUser)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, "u1", got["id"])
	assert.Equal(t, email, got["email"])

	rec = serve(t, http.MethodGet, "/api/auth/user", "/api/auth/user", "ghost", nil, h.GetAuthUser)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, http.MethodGet, "/api/auth/user", "/api/auth/user", "", nil, h.GetAuthUser)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decode[map[string]string](t, rec)["message"])
}

func TestGetAuthUserStoreFailure(t *testing.T) {
	h := NewUserHandler(testLogger(t), &fakeUserService{err: errors.New("timeout")})
	rec := serve(t, http.MethodGet, "/api/auth/user", "/api/auth/user", "u1", nil, h.GetAuthUser)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch user", decode[map[string]string](t, rec)["message"])
}
