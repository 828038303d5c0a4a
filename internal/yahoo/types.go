// Package yahoo provides a client for the Yahoo Finance query API.
// This package centralizes all upstream market data interactions for the
// application.
package yahoo

import (
	"fmt"
	"time"
)

// APIError represents an error response from the Yahoo Finance API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents an HTTP 429 from the API. Callers retry these
// with backoff; all other failures propagate immediately.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("yahoo rate limit exceeded, retry after %v", e.RetryAfter)
}
