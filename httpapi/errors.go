package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
)

// Error codes carried by Error.Code.
//
// Network-level failures (timeout, connection refused, DNS) always report
// Status 0, which is never a real HTTP status. HTTP-level failures report
// the server's status code and either the server-supplied code tag or
// CodeHTTPError when the error body carries none.
const (
	// CodeTimeout marks a call aborted by the effective timeout.
	CodeTimeout = "timeout"

	// CodeNetworkError marks any other failure that happened before an
	// HTTP status was available (DNS, connect, interceptor failure,
	// malformed response body).
	CodeNetworkError = "network_error"

	// CodeHTTPError marks a non-2xx response whose body did not supply
	// its own machine-readable code.
	CodeHTTPError = "http_error"
)

// Error is the single failure value produced by a client call.
//
// Exactly one Error (or one decoded payload) comes out of every call.
// Use errors.As to recover it from a wrapped chain:
//
//	_, err := client.Request("GetUser").Get(ctx, "/users/1")
//	var apiErr *httpapi.Error
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
//	    // handle missing user
//	}
type Error struct {
	// Status is the server's HTTP status code, or 0 for network-level
	// failures (including timeout).
	Status int

	// Code is a machine-readable tag: CodeTimeout, CodeNetworkError,
	// CodeHTTPError, or a code supplied by the server's error body.
	Code string

	// Message is a human-readable description.
	Message string

	// Details carries structured fields from the server's error body,
	// when it provided any.
	Details map[string]any

	// cause is the underlying transport error, if any.
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("httpapi: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("httpapi: %s (status %d, %s)", e.Message, e.Status, e.Code)
}

// Unwrap returns the underlying transport error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsNetwork reports whether the failure happened below the HTTP layer.
func (e *Error) IsNetwork() bool {
	return e.Status == 0
}

// IsTimeout reports whether the call was aborted by its timeout.
func (e *Error) IsTimeout() bool {
	return e.Code == CodeTimeout
}

// errorBody is the wire shape servers use for structured error responses.
type errorBody struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

// newHTTPError builds an Error from a non-2xx response.
//
// A malformed or empty body is tolerated: the resulting Error falls back
// to a generic "HTTP <status>: <statusText>" message and CodeHTTPError.
func newHTTPError(statusCode int, body []byte) *Error {
	var eb errorBody
	if len(body) > 0 {
		// Decode failures leave eb zero-valued on purpose.
		_ = json.Unmarshal(body, &eb)
	}

	apiErr := &Error{
		Status:  statusCode,
		Code:    eb.Code,
		Message: eb.Message,
		Details: eb.Details,
	}
	if apiErr.Code == "" {
		apiErr.Code = CodeHTTPError
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))
	}
	return apiErr
}

// wrapTransportError folds any failure outside the HTTP-status branch
// into a network-level Error. Errors that already are *Error pass
// through untouched so a call never produces nested client errors.
func wrapTransportError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if isTimeoutError(err) {
		return &Error{
			Status:  0,
			Code:    CodeTimeout,
			Message: "request timed out",
			cause:   err,
		}
	}

	return &Error{
		Status:  0,
		Code:    CodeNetworkError,
		Message: err.Error(),
		cause:   err,
	}
}

// isTimeoutError distinguishes the timeout guard from other transport
// failures. The guard is a per-call context deadline, which the net/http
// stack surfaces either directly or wrapped in a *url.Error.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}
