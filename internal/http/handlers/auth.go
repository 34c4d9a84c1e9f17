package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/http/response"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

// SessionWriter persists the signed-in user on the response.
type SessionWriter interface {
	Login(c *gin.Context, userID string) error
	Logout(c *gin.Context) error
}

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
	sessions    SessionWriter
	baseURL     string
}

// NewAuthHandler wires the login flow. baseURL is where the identity provider
// sends the browser back to after logout.
func NewAuthHandler(log *logger.Logger, authService services.AuthService, sessions SessionWriter, baseURL string) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
		sessions:    sessions,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// GET /api/login?returnTo=/courses/brevet-a
func (ah *AuthHandler) Login(c *gin.Context) {
	target, err := ah.authService.LoginURL(c.Request.Context(), c.Query("returnTo"))
	if err != nil {
		response.RespondServiceError(c, ah.log, err, "login_failed", "Failed to start sign-in")
		return
	}
	c.Redirect(http.StatusFound, target)
}

// GET /api/callback?state=...&code=...
func (ah *AuthHandler) Callback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		ah.log.Warn("identity provider returned an error", "error", providerErr, "description", c.Query("error_description"))
		response.RespondError(c, http.StatusUnauthorized, "login_denied", errors.New("Sign-in was cancelled"))
		return
	}
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		response.RespondServiceError(c, ah.log, apierr.ErrInvalidLoginState, "", "")
		return
	}

	user, returnTo, err := ah.authService.CompleteLogin(c.Request.Context(), state, code)
	if err != nil {
		response.RespondServiceError(c, ah.log, err, "login_failed", "Failed to sign in")
		return
	}
	if err := ah.sessions.Login(c, user.ID); err != nil {
		response.RespondServiceError(c, ah.log, err, "login_failed", "Failed to sign in")
		return
	}
	c.Redirect(http.StatusFound, services.SafeReturnTo(returnTo))
}

// GET /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.sessions.Logout(c); err != nil {
		ah.log.Warn("clearing session failed", "error", err)
	}
	redirect := "/"
	if ah.baseURL != "" {
		redirect = ah.baseURL + "/"
	}
	c.Redirect(http.StatusFound, ah.authService.LogoutURL(redirect))
}
