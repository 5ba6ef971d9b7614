package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
)

func (s *Server) ListOrders(c *gin.Context) {
	orders, err := s.orderSvc.List(c.Request.Context(), c.Param("gr"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) GenerateOrder(c *gin.Context) {
	var req orderdomain.GenerateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.GR = c.Param("gr")

	order, err := s.orderSvc.Generate(c.Request.Context(), req)
	s.observeCommand("generate_order", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) CancelOrder(c *gin.Context) {
	err := s.orderSvc.Cancel(c.Request.Context(), c.Param("order_id"))
	s.observeCommand("cancel_order", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cancelled": true}})
}
