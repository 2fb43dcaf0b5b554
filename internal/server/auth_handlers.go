package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenshub-dev/lenshub/internal/routeguard"
	"github.com/lenshub-dev/lenshub/internal/session"
)

// LoginRequest represents a login request
type LoginRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type" binding:"required,accounttype"`
}

// login exchanges credentials with the backend and, on success, persists
// the issued token in the session store. Backend failures never leak
// internals: the caller sees either the backend's own rejection message,
// "Invalid credentials", or "Something went wrong".
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid login request"})
		return
	}

	result, err := s.backend.Login(c.Request.Context(), req.LoginID, req.Password, req.Type)
	if err != nil {
		s.logger.Error().Err(err).Str("login_id", req.LoginID).Msg("Login request to backend failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Something went wrong"})
		return
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = "Invalid credentials"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
		return
	}

	if result.AccessToken != "" {
		s.store.Create(c, result.AccessToken)
	}

	message := result.Message
	if message == "" {
		message = "Logged in successfully"
	}

	s.logger.Info().Str("login_id", req.LoginID).Str("type", req.Type).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// logout destroys the session and redirects to the login page. It is
// idempotent: logging out with no session still succeeds.
func (s *Server) logout(c *gin.Context) {
	if identity, ok := s.resolver.Resolve(c); ok && identity.Role == session.RoleVendor {
		s.capabilities.Invalidate(c.Request.Context(), identity.ID)
	}

	s.store.Destroy(c)

	c.Redirect(http.StatusFound, routeguard.LoginPath)
}

// getCurrentUser returns the identity decoded from the session token
func (s *Server) getCurrentUser(c *gin.Context) {
	identity, ok := s.resolver.Resolve(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": identity})
}
