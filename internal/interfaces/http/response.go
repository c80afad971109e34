package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/application/service"
	"github.com/garyjia/bill-review/internal/domain/workflow"
)

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// respondError writes the error message; data may carry what the caller still needs, like a route
func respondError(c *gin.Context, status int, err error, data interface{}) {
	c.JSON(status, Response{Success: false, Data: data, Error: err.Error()})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var storeErr *port.StoreError
	switch {
	case errors.Is(err, service.ErrInvalidProof):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrGuardFailed):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storeErr):
		if storeErr.Code >= 400 && storeErr.Code < 600 {
			return storeErr.Code
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
