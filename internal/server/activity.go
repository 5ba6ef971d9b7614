package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
)

func (s *Server) ListActivity(c *gin.Context) {
	events, err := s.activitySvc.List(c.Request.Context(), activitydomain.ListRequest{
		GR:       c.Param("gr"),
		Category: strings.TrimSpace(c.Query("type")),
		Actor:    strings.TrimSpace(c.Query("actor")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

func (s *Server) ClearActivityLog(c *gin.Context) {
	result, err := s.activitySvc.Clear(c.Request.Context(), c.Param("gr"))
	s.observeCommand("clear_activity_log", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
