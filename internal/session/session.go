// Package session implements cookie-correlated, server-side sessions.
// The cookie carries only a signed session id; identity data stays in
// the Store.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AvaneeshKarthiks/FinWise/internal/config"
)

const contextKey = "session"

// Data is the identity state held for one caller.
type Data struct {
	EmployeeID    uint   `json:"employee_id,omitempty"`
	EmployeeName  string `json:"employee_name,omitempty"`
	EmployeeRole  string `json:"employee_role,omitempty"`
	VolunteerID   uint   `json:"volunteer_id,omitempty"`
	VolunteerName string `json:"volunteer_name,omitempty"`
}

func (d *Data) IsEmpty() bool {
	return d.EmployeeID == 0 && d.VolunteerID == 0
}

func (d *Data) ClearEmployee() {
	d.EmployeeID = 0
	d.EmployeeName = ""
	d.EmployeeRole = ""
}

func (d *Data) ClearVolunteer() {
	d.VolunteerID = 0
	d.VolunteerName = ""
}

// Session is the request-scoped view of a caller's session. ID is empty
// until the first Save.
type Session struct {
	ID   string
	Data Data
}

type Manager struct {
	store      Store
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     *slog.Logger
}

func NewManager(store Store, cfg config.SessionConfig, logger *slog.Logger) *Manager {
	return &Manager{
		store:      store,
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.CookieSecure,
		logger:     logger,
	}
}

// Middleware loads the caller's session into the gin context. A missing,
// tampered, expired or unknown cookie yields an empty session.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := &Session{}

		if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
			if id, err := m.verify(cookie); err == nil {
				data, err := m.store.Load(c.Request.Context(), id)
				switch {
				case err == nil:
					sess.ID = id
					sess.Data = *data
				case !errors.Is(err, ErrSessionNotFound):
					m.logger.Warn("Failed to load session", "error", err)
				}
			}
		}

		c.Set(contextKey, sess)
		c.Next()
	}
}

// Get returns the session loaded by Middleware, or an empty one.
func Get(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}
	sess := &Session{}
	c.Set(contextKey, sess)
	return sess
}

// Save persists the session and refreshes the cookie. A session with no
// identity left is destroyed instead. It must run before the response
// body is written.
func (m *Manager) Save(c *gin.Context, sess *Session) error {
	if sess.Data.IsEmpty() {
		return m.Destroy(c, sess)
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if err := m.store.Save(c.Request.Context(), sess.ID, &sess.Data, m.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := m.sign(sess.ID)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.ttl.Seconds()))
	return nil
}

// Regenerate drops the server-side entry under the current id and clears
// the id, keeping the data. The next Save issues a fresh id, so an id
// known before login never carries an authenticated identity.
func (m *Manager) Regenerate(c *gin.Context, sess *Session) error {
	if sess.ID == "" {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), sess.ID); err != nil {
		return fmt.Errorf("regenerate session: %w", err)
	}
	sess.ID = ""
	return nil
}

// Destroy removes the server-side entry and expires the cookie.
func (m *Manager) Destroy(c *gin.Context, sess *Session) error {
	if sess.ID != "" {
		if err := m.store.Delete(c.Request.Context(), sess.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	sess.ID = ""
	sess.Data = Data{}
	m.setCookie(c, "", -1)
	return nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}

func (m *Manager) sign(id string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return token, nil
}

func (m *Manager) verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session cookie has no id")
	}
	return claims.ID, nil
}
