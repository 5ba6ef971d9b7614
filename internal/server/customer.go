package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
)

func (s *Server) SearchCustomers(c *gin.Context) {
	field := strings.TrimSpace(c.Query("by"))
	query := strings.TrimSpace(c.Query("q"))

	results, err := s.customerSvc.Search(c.Request.Context(), customerdomain.SearchField(field), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (s *Server) GetCustomerSummary(c *gin.Context) {
	summary, err := s.customerSvc.Summary(c.Request.Context(), c.Param("gr"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) UpdatePersonalDetails(c *gin.Context) {
	var req customerdomain.UpdatePersonalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.GR = c.Param("gr")

	updated, err := s.customerSvc.UpdatePersonal(c.Request.Context(), req)
	s.observeCommand("update_personal_details", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}
