package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRequired reports that the server rejected the session credential.
// The credential has already been purged from the session store when this
// error is returned, so a retry cannot silently repeat the failure.
var ErrAuthRequired = errors.New("authentication required")

// HTTPStatusError reports a non-2xx response other than 401. These are never
// retried; the caller sees the status the server actually produced.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "http request failed"
	}
	if e.Status != "" {
		return e.Status
	}
	return fmt.Sprintf("http status %d", e.StatusCode)
}

// TransportError reports that no HTTP response was obtained: connection
// refused, DNS failure, or the per-attempt timeout firing. Only these are
// retried.
type TransportError struct {
	Cause   error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e == nil {
		return "request transport failed"
	}
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Cause)
	}
	return fmt.Sprintf("request transport failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrAuthRequired) {
		return true
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
	}
	return false
}

func IsTimeout(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Timeout
}
