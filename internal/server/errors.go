package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grazebox/backoffice/internal/fault"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps domain failures collected on the context to
// one JSON error response. Handlers report failures through AbortWithError
// and never write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return fault.Validationf("invalid request")
}

func mapError(err error) (int, errorPayload) {
	kind := fault.KindOf(err)
	switch kind {
	case fault.Validation:
		return http.StatusBadRequest, errorPayload{Type: string(kind), Message: err.Error()}
	case fault.NotFound:
		return http.StatusNotFound, errorPayload{Type: string(kind), Message: err.Error()}
	case fault.Conflict:
		return http.StatusConflict, errorPayload{Type: string(kind), Message: err.Error()}
	case fault.Persistence:
		return http.StatusInternalServerError, errorPayload{Type: string(kind), Message: "durable write failed"}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}
