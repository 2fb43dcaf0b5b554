package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listCoupons(c *gin.Context) {
	body, err := s.backend.ListCoupons(c.Request.Context(), s.sessionToken(c), c.Request.URL.Query())
	s.relay(c, body, err)
}

func (s *Server) createCoupon(c *gin.Context) {
	payload, err := requestBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	body, err := s.backend.CreateCoupon(c.Request.Context(), s.sessionToken(c), payload)
	s.relay(c, body, err)
}

func (s *Server) deleteCoupon(c *gin.Context) {
	body, err := s.backend.DeleteCoupon(c.Request.Context(), s.sessionToken(c), c.Param("id"))
	s.relay(c, body, err)
}
