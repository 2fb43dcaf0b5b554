package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getVendorProfile(c *gin.Context) {
	vendor, err := s.backend.VendorDetails(c.Request.Context(), s.sessionToken(c))
	if err != nil {
		s.relay(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": vendor})
}

func (s *Server) updateVendorSettings(c *gin.Context) {
	payload, err := requestBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	body, err := s.backend.UpdateVendorSettings(c.Request.Context(), s.sessionToken(c), payload)
	s.relay(c, body, err)
}

// getVendorCategories returns the caller's capability set from the
// session-scoped cache
func (s *Server) getVendorCategories(c *gin.Context) {
	identity, _ := GetIdentity(c)

	categories, err := s.capabilities.Categories(c.Request.Context(), identity.ID, s.sessionToken(c))
	if err != nil {
		s.relay(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// refreshVendorCategories re-fetches the capability set from the backend
// and atomically replaces the cached copy
func (s *Server) refreshVendorCategories(c *gin.Context) {
	identity, _ := GetIdentity(c)

	categories, err := s.capabilities.Refresh(c.Request.Context(), identity.ID, s.sessionToken(c))
	if err != nil {
		s.relay(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}
