// internal/pkg/auth/cookie.go
package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/your-org/storefront/internal/config"
)

const sessionIDKey = "sid"

// CookieStore carries the session id in a signed browser cookie
type CookieStore struct {
	store *sessions.CookieStore
	name  string
}

// NewCookieStore creates a cookie store signed with the JWT secret
func NewCookieStore(cfg *config.Config) *CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.JWT.Secret))
	store.MaxAge(int(cfg.Session.MaxAge.Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Session.Secure
	store.Options.SameSite = http.SameSiteLaxMode

	return &CookieStore{
		store: store,
		name:  cfg.Session.CookieName,
	}
}

// Save writes sessionID into the cookie
func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, sessionID string) error {
	// A tampered cookie yields an error plus a fresh session, which is what we want to overwrite.
	session, _ := s.store.Get(r, s.name)
	session.Values[sessionIDKey] = sessionID
	return session.Save(r, w)
}

// Load returns the session id carried by the request cookie, or ""
func (s *CookieStore) Load(r *http.Request) string {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		return ""
	}
	sessionID, _ := session.Values[sessionIDKey].(string)
	return sessionID
}

// Clear expires the cookie
func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, s.name)
	session.Options.MaxAge = -1
	delete(session.Values, sessionIDKey)
	return session.Save(r, w)
}
