package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")
)

// WrapError converts a Google API error into a package sentinel.
// Credential failures also wrap unavailable so callers classify them as an
// unconfigured capability; 429 responses wrap domain.ErrRateLimited.
func WrapError(err, unavailable error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, unavailable)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, unavailable)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, gerr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("google: %w", domain.ErrRateLimited)
	default:
		return err
	}
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// retryAfter extracts the Retry-After seconds from a 429 response, or 0.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return secs
}
