package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listOrders(c *gin.Context) {
	body, err := s.backend.ListOrders(c.Request.Context(), s.sessionToken(c), c.Request.URL.Query())
	s.relay(c, body, err)
}

func (s *Server) getOrder(c *gin.Context) {
	body, err := s.backend.GetOrder(c.Request.Context(), s.sessionToken(c), c.Param("id"))
	s.relay(c, body, err)
}

// updateOrderStatus forwards an order status transition; the backend
// validates the transition itself
func (s *Server) updateOrderStatus(c *gin.Context) {
	payload, err := requestBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	body, err := s.backend.UpdateOrderStatus(c.Request.Context(), s.sessionToken(c), c.Param("id"), payload)
	s.relay(c, body, err)
}
