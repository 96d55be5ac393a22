package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
)

func TestMemoryRegistryLifecycle(t *testing.T) {
	ctx := context.Background()
	registry := NewMemoryRegistry()

	id, err := registry.Create(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	customerID, err := registry.Resolve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(7), customerID)

	require.NoError(t, registry.Revoke(ctx, id))

	_, err = registry.Resolve(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRegistryExpiry(t *testing.T) {
	ctx := context.Background()
	registry := NewMemoryRegistry()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }

	id, err := registry.Create(ctx, 3, time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, err = registry.Resolve(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRegistryUnknownSession(t *testing.T) {
	_, err := NewMemoryRegistry().Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(&config.Config{
		JWT:     config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Session: config.SessionConfig{CookieName: "storefront_session", MaxAge: time.Hour},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, store.Save(rec, req, "sess-123"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/cart/", nil)
	next.AddCookie(cookies[0])
	assert.Equal(t, "sess-123", store.Load(next))

	cleared := httptest.NewRecorder()
	require.NoError(t, store.Clear(cleared, next))
	clearedCookies := cleared.Result().Cookies()
	require.Len(t, clearedCookies, 1)
	assert.True(t, clearedCookies[0].MaxAge < 0)
}

func TestCookieStoreRejectsTamperedCookie(t *testing.T) {
	store := NewCookieStore(&config.Config{
		JWT:     config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Session: config.SessionConfig{CookieName: "storefront_session", MaxAge: time.Hour},
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: "forged"})

	assert.Equal(t, "", store.Load(req))
}
