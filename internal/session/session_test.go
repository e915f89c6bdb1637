package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaneeshKarthiks/FinWise/internal/cache"
	"github.com/AvaneeshKarthiks/FinWise/internal/config"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(store Store) *Manager {
	return NewManager(store, config.SessionConfig{
		Secret:     testSecret,
		CookieName: "finwise_session",
		TTL:        time.Hour,
	}, discardLogger())
}

// newRouter exposes login/logout/whoami routes over the manager.
func newRouter(m *Manager) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/login", func(c *gin.Context) {
		sess := Get(c)
		sess.Data.EmployeeID = 7
		sess.Data.EmployeeName = "Ada"
		if err := m.Save(c, sess); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.POST("/logout", func(c *gin.Context) {
		sess := Get(c)
		sess.Data.ClearEmployee()
		if err := m.Save(c, sess); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, Get(c).Data)
	})
	return r
}

func do(r http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "finwise_session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	store := NewMemoryStore()
	r := newRouter(newTestManager(store))

	w := do(r, http.MethodPost, "/login", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	w = do(r, http.MethodGet, "/whoami", cookie)
	assert.JSONEq(t, `{"employee_id":7,"employee_name":"Ada"}`, w.Body.String())

	w = do(r, http.MethodPost, "/logout", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(t, w)
	assert.Less(t, cleared.MaxAge, 0)
	assert.Empty(t, store.entries)

	// The old cookie no longer maps to server-side data.
	w = do(r, http.MethodGet, "/whoami", cookie)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestRegenerateIssuesFreshID(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(store)
	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/login", func(c *gin.Context) {
		sess := Get(c)
		require.NoError(t, m.Regenerate(c, sess))
		sess.Data.VolunteerID = 3
		require.NoError(t, m.Save(c, sess))
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, Get(c).Data)
	})

	first := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	firstID, err := m.verify(first.Value)
	require.NoError(t, err)

	second := sessionCookie(t, do(r, http.MethodPost, "/login", first))
	secondID, err := m.verify(second.Value)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)
	assert.Len(t, store.entries, 1)

	w := do(r, http.MethodGet, "/whoami", first)
	assert.JSONEq(t, `{}`, w.Body.String())
	w = do(r, http.MethodGet, "/whoami", second)
	assert.JSONEq(t, `{"volunteer_id":3}`, w.Body.String())
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	r := newRouter(newTestManager(NewMemoryStore()))

	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	sig := strings.LastIndex(cookie.Value, ".") + 1
	flipped := byte('A')
	if cookie.Value[sig] == 'A' {
		flipped = 'B'
	}
	cookie.Value = cookie.Value[:sig] + string(flipped) + cookie.Value[sig+1:]

	w := do(r, http.MethodGet, "/whoami", cookie)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestCookieSignedWithOtherSecretIsIgnored(t *testing.T) {
	store := NewMemoryStore()
	r := newRouter(newTestManager(store))

	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	m := newTestManager(store)
	id, err := m.verify(cookie.Value)
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/whoami", &http.Cookie{Name: "finwise_session", Value: forged})
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestVerifyRejectsExpiredAndUnsigned(t *testing.T) {
	m := newTestManager(NewMemoryStore())

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.verify(expired)
	assert.Error(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "abc"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.verify(noExp)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.verify(unsigned)
	assert.Error(t, err)

	valid, err := m.sign("abc")
	require.NoError(t, err)
	id, err := m.verify(valid)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestClearingOneIdentityKeepsTheOther(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(store)
	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/both", func(c *gin.Context) {
		sess := Get(c)
		sess.Data.EmployeeID = 1
		sess.Data.VolunteerID = 2
		require.NoError(t, m.Save(c, sess))
	})
	r.POST("/employee-out", func(c *gin.Context) {
		sess := Get(c)
		sess.Data.ClearEmployee()
		require.NoError(t, m.Save(c, sess))
		c.JSON(http.StatusOK, sess.Data)
	})

	cookie := sessionCookie(t, do(r, http.MethodPost, "/both", nil))
	w := do(r, http.MethodPost, "/employee-out", cookie)
	assert.JSONEq(t, `{"volunteer_id":2}`, w.Body.String())
	assert.Len(t, store.entries, 1)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "id", &Data{VolunteerID: 3}, time.Minute))
	got, err := store.Load(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.VolunteerID)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "id")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(cache.NewCacheHelper(client, "session:"), discardLogger())

	require.NoError(t, store.Save(ctx, "abc", &Data{EmployeeID: 9, EmployeeRole: "admin"}, time.Minute))
	assert.True(t, mr.Exists("session:abc"))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Data{EmployeeID: 9, EmployeeRole: "admin"}, *got)

	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, "def", &Data{VolunteerID: 1}, time.Minute))
	require.NoError(t, store.Delete(ctx, "def"))
	assert.False(t, mr.Exists("session:def"))
}

func TestRedisBackedLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := newRouter(newTestManager(NewRedisStore(cache.NewCacheHelper(client, "session:"), discardLogger())))

	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	assert.Len(t, mr.Keys(), 1)

	w := do(r, http.MethodGet, "/whoami", cookie)
	assert.JSONEq(t, `{"employee_id":7,"employee_name":"Ada"}`, w.Body.String())

	do(r, http.MethodPost, "/logout", cookie)
	assert.Empty(t, mr.Keys())
}
