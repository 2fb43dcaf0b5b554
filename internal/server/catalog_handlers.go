package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listProducts forwards a catalog listing with search/pagination query
// passthrough (frames, sunglasses and readers share this endpoint)
func (s *Server) listProducts(c *gin.Context) {
	body, err := s.backend.ListProducts(c.Request.Context(), s.sessionToken(c), c.Request.URL.Query())
	s.relay(c, body, err)
}

func (s *Server) getProduct(c *gin.Context) {
	body, err := s.backend.GetProduct(c.Request.Context(), s.sessionToken(c), c.Param("id"))
	s.relay(c, body, err)
}

// adjustStock forwards a stock adjustment for a product
func (s *Server) adjustStock(c *gin.Context) {
	payload, err := requestBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	body, err := s.backend.AdjustStock(c.Request.Context(), s.sessionToken(c), c.Param("id"), payload)
	s.relay(c, body, err)
}

func (s *Server) listLensSolutions(c *gin.Context) {
	body, err := s.backend.ListLensSolutions(c.Request.Context(), s.sessionToken(c), c.Request.URL.Query())
	s.relay(c, body, err)
}

func (s *Server) listAccessories(c *gin.Context) {
	body, err := s.backend.ListAccessories(c.Request.Context(), s.sessionToken(c), c.Request.URL.Query())
	s.relay(c, body, err)
}
