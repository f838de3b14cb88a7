package handlers

import (
	"log"
	"net/http"

	"fleetops/internal/domain"
	"fleetops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		log.Printf("[HTTP] request_id=%s path=%s error=%v", middleware.GetRequestID(c), c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

// respondFetchError answers a failed read. Anything that is not a client
// error becomes a 500 "Failed to fetch <resource>"; the cause is only logged.
func respondFetchError(c *gin.Context, resource string, err error) {
	if domain.IsValidation(err) || domain.IsNotFound(err) {
		RespondDomainError(c, err)
		return
	}
	log.Printf("[HTTP] request_id=%s path=%s fetch=%q error=%v", middleware.GetRequestID(c), c.Request.URL.Path, resource, err)
	respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch "+resource, nil)
}
