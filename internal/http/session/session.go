package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/edutax/edutax-backend/internal/platform/keys"
)

const (
	DefaultName = "edutax_session"

	keyUserID    = "user_id"
	keySessionID = "sid"
)

type Config struct {
	Name   string
	Secret []byte
	MaxAge time.Duration
	Secure bool
}

// Manager stores the signed-in user id in an encrypted, signed cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret is empty")
	}
	hashKey, err := keys.Derive(cfg.Secret, keys.PurposeCookieHash, 32)
	if err != nil {
		return nil, err
	}
	blockKey, err := keys.Derive(cfg.Secret, keys.PurposeCookieBlock, 32)
	if err != nil {
		return nil, err
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)
	return &Manager{store: store, name: name}, nil
}

// Login starts a fresh session for userID and writes the cookie.
func (m *Manager) Login(c *gin.Context, userID string) error {
	s, _ := m.store.Get(c.Request, m.name)
	s.Values = map[interface{}]interface{}{
		keyUserID:    userID,
		keySessionID: uuid.NewString(),
	}
	return s.Save(c.Request, c.Writer)
}

func (m *Manager) Logout(c *gin.Context) error {
	s, _ := m.store.Get(c.Request, m.name)
	s.Values = map[interface{}]interface{}{}
	s.Options.MaxAge = -1
	return s.Save(c.Request, c.Writer)
}

// Identity returns the session's user and session ids. A missing, expired or
// tampered cookie yields empty strings.
func (m *Manager) Identity(r *http.Request) (userID, sessionID string) {
	s, err := m.store.Get(r, m.name)
	if err != nil || s == nil {
		return "", ""
	}
	userID, _ = s.Values[keyUserID].(string)
	sessionID, _ = s.Values[keySessionID].(string)
	return userID, sessionID
}
