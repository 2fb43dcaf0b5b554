package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenshub-dev/lenshub/internal/backend"
)

// relay writes a backend response through to the dashboard, converting
// failures into the standard {success, message} shape. Backend rejections
// keep their status and message; anything else is a generic 502.
func (s *Server) relay(c *gin.Context, body json.RawMessage, err error) {
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = "Something went wrong"
			}
			c.JSON(apiErr.StatusCode, gin.H{"success": false, "message": message})
			return
		}

		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Backend request failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Something went wrong"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// requestBody reads the raw JSON body for forwarding
func requestBody(c *gin.Context) (json.RawMessage, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	return io.ReadAll(c.Request.Body)
}

// sessionToken returns the caller's bearer token. Handlers behind
// SessionMiddleware always have one.
func (s *Server) sessionToken(c *gin.Context) string {
	token, _ := s.store.Read(c)
	return token
}
