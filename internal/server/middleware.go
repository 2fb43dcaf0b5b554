package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lenshub-dev/lenshub/internal/capability"
	"github.com/lenshub-dev/lenshub/internal/routeguard"
	"github.com/lenshub-dev/lenshub/internal/session"
)

func setIdentity(c *gin.Context, identity session.Identity) {
	c.Set("identity", identity)
}

// GetIdentity returns the resolved identity set by SessionMiddleware.
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	value, exists := c.Get("identity")
	if !exists {
		return session.Identity{}, false
	}

	identity, ok := value.(session.Identity)
	return identity, ok
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, message string) {
	log.Warn().Str("path", c.Request.URL.Path).Int("status", statusCode).Msg(message)
	c.JSON(statusCode, gin.H{"success": false, "message": message})
	c.Abort()
}

// RouteGuardMiddleware applies the route classification policy to every
// request: authenticated callers are bounced off login/register pages,
// anonymous callers are bounced off protected pages. The token check is
// shallow presence only; full decoding happens in SessionMiddleware.
func RouteGuardMiddleware(store session.TokenStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, hasToken := store.Read(c)

		decision := routeguard.Evaluate(c.Request.URL.Path, hasToken)
		switch decision {
		case routeguard.RedirectToDashboard:
			log.Debug().Str("path", c.Request.URL.Path).Str("decision", decision.String()).Msg("Route guard redirect")
			c.Redirect(http.StatusFound, routeguard.DashboardPath)
			c.Abort()
		case routeguard.RedirectToLogin:
			log.Debug().Str("path", c.Request.URL.Path).Str("decision", decision.String()).Msg("Route guard redirect")
			c.Redirect(http.StatusFound, routeguard.LoginPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// SessionMiddleware resolves the session token into a typed identity and
// rejects anonymous callers. A malformed or expired token is treated the
// same as no token at all.
func SessionMiddleware(resolver *session.Resolver, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := resolver.Resolve(c)
		if !ok {
			respondWithError(c, log, http.StatusUnauthorized, "Authentication required")
			return
		}

		setIdentity(c, identity)

		c.Next()
	}
}

// AdminOnlyMiddleware ensures the authenticated caller holds an admin role
func AdminOnlyMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists {
			respondWithError(c, log, http.StatusUnauthorized, "Authentication required")
			return
		}

		if !identity.Role.Elevated() {
			respondWithError(c, log, http.StatusForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}

// requireCategories gates a route group behind the vendor capability set.
// Admin roles pass unconditionally; vendors pass when at least one of the
// required categories is enabled for them. Denial is a normal outcome,
// answered with recovery navigation rather than logged as an error.
func (s *Server) requireCategories(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists {
			respondWithError(c, s.logger, http.StatusUnauthorized, "Authentication required")
			return
		}

		if identity.Role.Elevated() {
			c.Next()
			return
		}

		token, _ := s.store.Read(c)
		granted, err := s.capabilities.Categories(c.Request.Context(), identity.ID, token)
		if err != nil {
			s.logger.Error().Err(err).Str("vendor_id", identity.ID).Msg("Failed to load vendor categories")
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Something went wrong"})
			c.Abort()
			return
		}

		if !capability.Match(required, granted) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access restricted",
				"links": gin.H{
					"dashboard": "/dashboard",
					"settings":  "/dashboard/settings",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
