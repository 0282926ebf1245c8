package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"payment/internal/auth"
	"payment/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service and auth errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Credential errors
	case errors.Is(err, auth.ErrMissingCredential),
		errors.Is(err, auth.ErrMalformedCredential),
		errors.Is(err, auth.ErrInvalidCredential):
		return http.StatusUnauthorized

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
