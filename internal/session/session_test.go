package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-admin/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{ID: 7, Username: "dra.lopez", Role: models.RoleMedico}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, "abc", testIdentity, time.Hour))
	assert.True(t, mr.Exists("session:abc"))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, testIdentity, got)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, store.Delete(ctx, "abc"))
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, "abc", testIdentity, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "a", testIdentity, time.Minute))
	require.NoError(t, store.Save(ctx, "b", testIdentity, time.Hour))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, testIdentity, got)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, store.Sweep())
	_, err = store.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CreateResolve(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemoryStore(), []byte("secret"), time.Hour, false)

	token, err := mgr.Create(ctx, testIdentity)
	require.NoError(t, err)

	got, err := mgr.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, got)

	other := NewManager(NewMemoryStore(), []byte("other"), time.Hour, false)
	_, err = other.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = mgr.Resolve(ctx, token+"x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_IssueAndDestroy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewMemoryStore()
	mgr := NewManager(store, []byte("secret"), time.Hour, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, mgr.Issue(c, testIdentity))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookies[0])

	got, err := mgr.Current(c2)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, got)

	require.NoError(t, mgr.Destroy(c2))
	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)

	_, err = mgr.Resolve(context.Background(), cookies[0].Value)
	assert.ErrorIs(t, err, ErrNotFound)

	// logging out again with the stale cookie still succeeds
	w3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(w3)
	c3.Request = httptest.NewRequest(http.MethodGet, "/logout", nil)
	c3.Request.AddCookie(cookies[0])
	assert.NoError(t, mgr.Destroy(c3))
}

func TestManager_DestroyWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := NewManager(NewMemoryStore(), []byte("secret"), time.Hour, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/logout", nil)

	assert.NoError(t, mgr.Destroy(c))
	_, err := mgr.Current(c)
	assert.ErrorIs(t, err, ErrNotFound)
}
