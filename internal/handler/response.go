package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"loadboard/internal/repository"
	"loadboard/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrLoadNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBenefitNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return http.StatusNotFound

	// Authentication errors
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidBidAmount),
		errors.Is(err, service.ErrInvalidLoadID),
		errors.Is(err, service.ErrInvalidBidID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrIneligibleTrucker):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrLoadNotBiddable),
		errors.Is(err, service.ErrLoadBusy),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
