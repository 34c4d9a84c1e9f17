package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/kv"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

const (
	loginStateTTL    = 10 * time.Minute
	loginStatePrefix = "auth:state:"
	stateIssuer      = "edutax"
)

// AuthService drives the authorization-code login against the identity provider.
// Sessions themselves live in the HTTP layer; this service only proves who the
// caller is and keeps the user row current.
type AuthService interface {
	Enabled() bool
	LoginURL(ctx context.Context, returnTo string) (string, error)
	// CompleteLogin returns the upserted user and the path to send the browser to.
	CompleteLogin(ctx context.Context, state, code string) (*types.User, string, error)
	LogoutURL(postLogoutRedirect string) string
}

// pendingLogin is what the state store holds between redirect and callback.
type pendingLogin struct {
	Verifier string `json:"verifier"`
	Nonce    string `json:"nonce"`
}

type loginStateClaims struct {
	ReturnTo string `json:"return_to,omitempty"`
	jwt.RegisteredClaims
}

type authService struct {
	log         *logger.Logger
	provider    *OIDCProvider
	states      kv.Store
	signingKey  []byte
	userService UserService
	now         func() time.Time
}

// NewAuthService builds the service. provider may be nil, in which case every
// login attempt fails with ErrLoginDisabled.
func NewAuthService(
	baseLog *logger.Logger,
	provider *OIDCProvider,
	states kv.Store,
	signingKey []byte,
	userService UserService,
) AuthService {
	return &authService{
		log:         baseLog.With("service", "AuthService"),
		provider:    provider,
		states:      states,
		signingKey:  signingKey,
		userService: userService,
		now:         time.Now,
	}
}

func (s *authService) Enabled() bool { return s.provider != nil }

func (s *authService) LoginURL(ctx context.Context, returnTo string) (string, error) {
	if s.provider == nil {
		return "", apierr.ErrLoginDisabled
	}
	now := s.now()
	jti := uuid.NewString()
	claims := loginStateClaims{
		ReturnTo: SafeReturnTo(returnTo),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    stateIssuer,
			Audience:  jwt.ClaimStrings{s.provider.ClientID()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(loginStateTTL)),
		},
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign login state: %w", err)
	}

	pending := pendingLogin{Verifier: oauth2.GenerateVerifier(), Nonce: uuid.NewString()}
	raw, err := json.Marshal(pending)
	if err != nil {
		return "", err
	}
	ok, err := s.states.SetNX(ctx, loginStatePrefix+jti, raw, loginStateTTL)
	if err != nil {
		s.log.Error("store login state failed", "error", err)
		return "", fmt.Errorf("store login state: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("login state collision")
	}
	return s.provider.AuthCodeURL(state, pending.Verifier, pending.Nonce), nil
}

func (s *authService) parseState(state string) (*loginStateClaims, error) {
	claims := &loginStateClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithAudience(s.provider.ClientID()),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("state has no id")
	}
	return claims, nil
}

func (s *authService) CompleteLogin(ctx context.Context, state, code string) (*types.User, string, error) {
	if s.provider == nil {
		return nil, "", apierr.ErrLoginDisabled
	}
	if strings.TrimSpace(state) == "" || strings.TrimSpace(code) == "" {
		return nil, "", apierr.ErrInvalidLoginState
	}

	claims, err := s.parseState(state)
	if err != nil {
		s.log.Warn("rejected login state", "error", err)
		return nil, "", apierr.ErrInvalidLoginState
	}

	raw, err := s.states.Take(ctx, loginStatePrefix+claims.ID)
	if errors.Is(err, kv.ErrNotFound) {
		s.log.Warn("login state already used or expired")
		return nil, "", apierr.ErrInvalidLoginState
	}
	if err != nil {
		return nil, "", fmt.Errorf("consume login state: %w", err)
	}
	var pending pendingLogin
	if err := json.Unmarshal(raw, &pending); err != nil || pending.Verifier == "" {
		s.log.Warn("stored login state is unreadable", "error", err)
		return nil, "", apierr.ErrInvalidLoginState
	}

	profile, err := s.provider.FetchProfile(ctx, code, pending.Verifier, pending.Nonce)
	if err != nil {
		s.log.Error("identity provider exchange failed", "error", err)
		return nil, "", apierr.New(http.StatusBadGateway, "identity_provider_error", errors.New("Sign-in failed, please try again"))
	}

	u, err := s.userService.UpsertUser(ctx, profile)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("User signed in", "user_id", u.ID)
	return u, claims.ReturnTo, nil
}

func (s *authService) LogoutURL(postLogoutRedirect string) string {
	if s.provider == nil || s.provider.EndSessionURL() == "" {
		return "/"
	}
	u, err := url.Parse(s.provider.EndSessionURL())
	if err != nil {
		return "/"
	}
	q := u.Query()
	q.Set("client_id", s.provider.ClientID())
	if postLogoutRedirect != "" {
		q.Set("post_logout_redirect_uri", postLogoutRedirect)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// SafeReturnTo keeps only same-origin absolute paths, defaulting to "/".
func SafeReturnTo(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return raw
}
