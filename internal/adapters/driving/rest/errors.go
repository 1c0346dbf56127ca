// Package rest exposes the screener over HTTP using gin.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("rest: query service is required")

// errNotConfigured is returned by routes whose backing service was not wired.
var errNotConfigured = errors.New("service not configured")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"error_code"`
	Error     string `json:"error"`
}

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrNoSlots):
		return http.StatusNotFound, "no_slots"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errNotConfigured), errors.Is(err, domain.ErrRateLimited):
		return http.StatusServiceUnavailable, "unavailable"
	}

	switch domain.KindOf(err) {
	case domain.FailureUnavailable, domain.FailureTimeout:
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// respondError writes err with the status it maps to.
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{ErrorCode: code, Error: err.Error()})
}

// respondBadRequest writes a 400 with the given message.
func respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{ErrorCode: "bad_request", Error: message})
}
