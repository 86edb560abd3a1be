package gateway

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
)

// ErrStaleSession matches a RequestFailure whose status says the credential is invalid or expired.
var ErrStaleSession = errors.New("stale session")

// NetworkFailure reports an exchange where no response reached the client (connectivity, timeout,
// cancellation).
type NetworkFailure struct {
	Method string
	Path   string
	Err    error
}

// Error implements error.
func (f *NetworkFailure) Error() string {
	return fmt.Sprintf("%s %s: no response: %v", f.Method, f.Path, f.Err)
}

// Unwrap exposes the transport error.
func (f *NetworkFailure) Unwrap() []error {
	return []error{apperrors.ErrUnavailable, f.Err}
}

// RequestFailure reports a response received with a non-success status.
type RequestFailure struct {
	Method string
	Path   string
	Status int
	// Message is the server-supplied message, empty when the body carried none.
	Message string
	// Body is the raw response body.
	Body []byte
}

// Error implements error.
func (f *RequestFailure) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", f.Method, f.Path, f.Status, f.Message)
	}
	return fmt.Sprintf("%s %s: status %d", f.Method, f.Path, f.Status)
}

// Is matches ErrStaleSession for 401 responses.
func (f *RequestFailure) Is(target error) bool {
	return target == ErrStaleSession && f.Status == http.StatusUnauthorized
}

// Unwrap maps the status to a domain error.
func (f *RequestFailure) Unwrap() error {
	switch f.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidInput
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusConflict:
		return apperrors.ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apperrors.ErrUnavailable
	default:
		return nil
	}
}

// IsStale reports whether the failure indicates the stored credential is no longer accepted.
func (f *RequestFailure) IsStale() bool {
	return f.Status == http.StatusUnauthorized
}
