package session

import (
	"github.com/gin-gonic/gin"
)

// TokenStore is the single source of truth for the bearer token across
// requests. Injected into the server so tests can supply an in-memory
// implementation.
type TokenStore interface {
	// Create persists the token for all subsequent requests in the session.
	Create(c *gin.Context, token string)
	// Read returns the current token, or ("", false) when absent. It never
	// errors.
	Read(c *gin.Context) (string, bool)
	// Destroy removes the token. Destroying an absent token is a no-op.
	Destroy(c *gin.Context)
}

// CookieStore keeps the token in an HTTP-only session cookie, so the
// browser attaches it to every dashboard request automatically.
type CookieStore struct {
	name   string
	secure bool
}

// NewCookieStore creates a cookie-backed token store.
func NewCookieStore(name string, secure bool) *CookieStore {
	return &CookieStore{name: name, secure: secure}
}

// Create sets the session cookie on the response. MaxAge 0 makes it a
// browser-session cookie; the token's own expiry bounds its useful life.
func (s *CookieStore) Create(c *gin.Context, token string) {
	c.SetCookie(s.name, token, 0, "/", "", s.secure, true)
}

// Read returns the token from the request cookie.
func (s *CookieStore) Read(c *gin.Context) (string, bool) {
	token, err := c.Cookie(s.name)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Destroy expires the session cookie.
func (s *CookieStore) Destroy(c *gin.Context) {
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}
