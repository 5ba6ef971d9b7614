package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// Datacheck reports collection sizes plus the number of accounts with a
// derivable payments view. Auxiliary surface, not part of the core
// contract.
func (s *Server) Datacheck(c *gin.Context) {
	s.syncCollectionGauges()
	counts := s.store.Counts()

	paymentAccounts, err := s.paymentSvc.AccountCount(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":          counts.Customers,
		"orders":             counts.Orders,
		"complaints":         counts.Complaints,
		"messages":           counts.Messages,
		"subscriptions":      counts.Subscriptions,
		"activity":           counts.Activity,
		"generated_payments": paymentAccounts,
	})
}

func (s *Server) ComplaintCount(c *gin.Context) {
	gr := c.Param("gr")
	count, err := s.complaintSvc.CountForAccount(c.Request.Context(), gr)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gr": gr, "count": count})
}

func (s *Server) ComplaintIndex(c *gin.Context) {
	index, err := s.complaintSvc.CountIndex(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	grs := make([]string, 0, len(index))
	for gr := range index {
		grs = append(grs, gr)
	}
	sort.Strings(grs)

	rows := make([]gin.H, 0, len(grs))
	for _, gr := range grs {
		rows = append(rows, gin.H{"gr": gr, "count": index[gr]})
	}
	c.JSON(http.StatusOK, rows)
}
