package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims mirrors the payload of access tokens issued by the
// marketplace backend at login.
type TokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the decoded, read-only view of a valid session token.
type Identity struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DecodeToken decodes a backend-issued access token into an Identity.
//
// The gateway never holds the backend's signing key — tokens are issued
// and signature-verified by the backend on every proxied call — so the
// payload is parsed without signature verification and only expiry is
// checked here. Any malformed, expired, or incomplete token yields
// (zero, false): indistinguishable from never having logged in.
func DecodeToken(token string) (Identity, bool) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, false
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return Identity{}, false
	}

	if claims.UserID == "" {
		return Identity{}, false
	}

	return Identity{
		ID:    claims.UserID,
		Role:  ParseRole(claims.Role),
		Name:  claims.Name,
		Email: claims.Email,
	}, true
}
