// Package netretry provides shared retry helpers for transient network
// errors during downloads.
package netretry

import (
	"net/http"
	"strings"
	"time"
)

// IsRetryableStatus returns true for HTTP status codes that indicate a
// transient server-side or throttling condition worth retrying.
func IsRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return statusCode >= http.StatusInternalServerError &&
			statusCode <= http.StatusGatewayTimeout
	}
}

// IsRetryable returns true if the error indicates a transient network error
// that should be retried. This covers TCP-level errors such as connection
// resets, timeouts, and unexpected EOF.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()

	textPatterns := []string{
		"connection reset by peer", "connection refused",
		"i/o timeout", "TLS handshake timeout",
		"unexpected EOF", "no such host",
		"temporary failure in name resolution",
	}

	for _, pattern := range textPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}

// ExponentialDelay returns the delay for the given retry attempt using
// exponential backoff: min(baseWait * 2^(attempt-1), maxWait).
func ExponentialDelay(attempt int, baseWait, maxWait time.Duration) time.Duration {
	return min(baseWait*time.Duration(1<<(attempt-1)), maxWait)
}
