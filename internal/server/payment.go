package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPayments(c *gin.Context) {
	view, err := s.paymentSvc.ForAccount(c.Request.Context(), c.Param("gr"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) GetMessages(c *gin.Context) {
	thread, err := s.messageSvc.Thread(c.Request.Context(), c.Param("gr"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": thread})
}
