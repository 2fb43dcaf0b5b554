package session

import (
	"github.com/gin-gonic/gin"
)

// Resolver turns the stored token into a typed Identity without a
// network call. Resolution is read-only, so it is safe to call from any
// number of concurrent handlers.
type Resolver struct {
	store TokenStore
}

// NewResolver creates a resolver backed by the given token store.
func NewResolver(store TokenStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the caller's Identity, or (zero, false) for anonymous
// callers. An absent, malformed, or expired token is the anonymous
// outcome, not an error.
func (r *Resolver) Resolve(c *gin.Context) (Identity, bool) {
	token, ok := r.store.Read(c)
	if !ok {
		return Identity{}, false
	}
	return DecodeToken(token)
}
