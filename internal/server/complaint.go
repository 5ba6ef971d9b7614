package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	complaintdomain "github.com/grazebox/backoffice/internal/complaint/domain"
)

func (s *Server) ListComplaints(c *gin.Context) {
	complaints, err := s.complaintSvc.List(c.Request.Context(), c.Param("gr"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": complaints})
}

func (s *Server) CreateComplaint(c *gin.Context) {
	var req complaintdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.GR = c.Param("gr")

	created, err := s.complaintSvc.Create(c.Request.Context(), req)
	s.observeCommand("create_complaint", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) UpdateComplaint(c *gin.Context) {
	var req complaintdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.GR = c.Param("gr")
	req.ComplaintID = c.Param("complaint_id")

	updated, err := s.complaintSvc.Update(c.Request.Context(), req)
	s.observeCommand("update_complaint", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) DeleteComplaint(c *gin.Context) {
	err := s.complaintSvc.Delete(c.Request.Context(), c.Param("gr"), c.Param("complaint_id"))
	s.observeCommand("delete_complaint", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
