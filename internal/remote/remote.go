// Package remote holds the error scheme shared by clients of the hosted AI
// services. Callers need to tell rate limiting (retry after a delay) from
// quota exhaustion (do not retry) from everything else (retry now).
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Error is a failure reported by an external service.
type Error struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("service error (%d): %s (retry after %s)", e.StatusCode, e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("service error (%d): %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the service asked us to slow down.
func (e *Error) RateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }

// QuotaExhausted reports whether retrying is pointless without intervention.
func (e *Error) QuotaExhausted() bool { return e.StatusCode == http.StatusPaymentRequired }

// Retryable reports whether an immediate or delayed retry can succeed.
func (e *Error) Retryable() bool { return !e.QuotaExhausted() }

// errorBody is the error envelope the edge functions return.
type errorBody struct {
	Error             string `json:"error"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// DecodeError turns a non-2xx response into an *Error, draining the body.
func DecodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	e := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		e.Message = envelope.Error
		if envelope.RetryAfterSeconds > 0 {
			e.RetryAfter = time.Duration(envelope.RetryAfterSeconds) * time.Second
		}
	}

	if e.RetryAfter == 0 {
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil {
				e.RetryAfter = time.Duration(secs) * time.Second
			}
		}
	}

	return e
}

// AsError unwraps err into a *Error when possible.
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
