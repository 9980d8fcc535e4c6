package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hospital-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName is the browser cookie holding the signed session id.
const CookieName = "sid"

type Manager struct {
	store        Store
	secret       []byte
	ttl          time.Duration
	secureCookie bool
}

func NewManager(store Store, secret []byte, ttl time.Duration, secureCookie bool) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl, secureCookie: secureCookie}
}

// Create stores a new session for identity and returns the signed cookie value.
func (m *Manager) Create(ctx context.Context, identity Identity) (string, error) {
	id := uuid.NewString()
	if err := m.store.Save(ctx, id, identity, m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	token, err := utils.GenerateSessionToken(id, m.secret, m.ttl)
	if err != nil {
		_ = m.store.Delete(ctx, id)
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Issue creates a session and writes its cookie on the response.
func (m *Manager) Issue(c *gin.Context, identity Identity) error {
	token, err := m.Create(c.Request.Context(), identity)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.ttl.Seconds()))
	return nil
}

// Resolve verifies the cookie signature before touching the store.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (Identity, error) {
	id, err := utils.ParseSessionToken(cookieValue, m.secret)
	if err != nil {
		return Identity{}, ErrNotFound
	}
	return m.store.Load(ctx, id)
}

// Current returns the identity of the request's session. Store failures other
// than a miss are returned so callers can tell them apart from "logged out".
func (m *Manager) Current(c *gin.Context) (Identity, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie == "" {
		return Identity{}, ErrNotFound
	}
	return m.Resolve(c.Request.Context(), cookie)
}

// Destroy removes the session, if any, and always clears the cookie.
func (m *Manager) Destroy(c *gin.Context) error {
	defer m.setCookie(c, "", -1)

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie == "" {
		return nil
	}
	id, err := utils.ParseSessionToken(cookie, m.secret)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secureCookie, true)
}
