package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestInterceptor allows modification of requests before they are sent.
// Interceptors are executed in the order they are added, and each may block
// on its own work (reading a stored credential, refreshing a token) before
// the next one runs.
//
// Common use cases:
//   - Adding authentication headers (Bearer tokens, API keys)
//   - Injecting correlation IDs
//   - Adding custom headers based on request context
//
// Returning an error aborts the call; the failure is reported to the caller
// as a network-level Error after the error-interceptor chain has observed it.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor transforms the body of a successful response before
// it is decoded into the caller's target. Interceptors are executed in the
// order they are added; each receives the previous interceptor's output.
//
// Common use cases:
//   - Unwrapping a response envelope (see UnwrapEnvelope)
//   - Normalizing payload shapes across API versions
type ResponseInterceptor func(ctx context.Context, body []byte) ([]byte, error)

// ErrorInterceptor observes the terminal Error of a failed call.
// Interceptors are executed in the order they are added and may mutate the
// Error in place (message, code, details). They cannot suppress it: the
// pipeline always returns the Error to the caller after the chain runs.
//
// Common use cases:
//   - Clearing stored credentials and redirecting on 401
//   - Diagnostic logging in debug builds
type ErrorInterceptor func(ctx context.Context, apiErr *Error)

// interceptorChain holds the three ordered chains of a client.
// Registration happens at setup time; calls only read.
type interceptorChain struct {
	request  []RequestInterceptor
	response []ResponseInterceptor
	errs     []ErrorInterceptor
}

// applyRequest runs all request interceptors in order.
// The first failure stops the chain.
func (c *interceptorChain) applyRequest(ctx context.Context, req *http.Request) error {
	for _, interceptor := range c.request {
		if err := interceptor(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// applyResponse runs all response interceptors in order, feeding each
// interceptor's output to the next.
func (c *interceptorChain) applyResponse(ctx context.Context, body []byte) ([]byte, error) {
	var err error
	for _, interceptor := range c.response {
		body, err = interceptor(ctx, body)
		if err != nil {
			return nil, err
		}
	}
	return body, nil
}

// applyError runs all error interceptors in order. The chain observes and
// may mutate apiErr but never replaces or suppresses it.
func (c *interceptorChain) applyError(ctx context.Context, apiErr *Error) {
	for _, interceptor := range c.errs {
		interceptor(ctx, apiErr)
	}
}

// Common interceptor helpers

// AuthBearerInterceptor creates an interceptor that adds a fixed Bearer token.
func AuthBearerInterceptor(token string) RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// AuthBearerFuncInterceptor creates an interceptor that adds a Bearer token
// from a function (useful for dynamic/refreshable tokens).
func AuthBearerFuncInterceptor(tokenFunc func(ctx context.Context) (string, error)) RequestInterceptor {
	return func(ctx context.Context, req *http.Request) error {
		token, err := tokenFunc(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// APIKeyInterceptor creates an interceptor that adds an API key header.
func APIKeyInterceptor(headerName, apiKey string) RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set(headerName, apiKey)
		return nil
	}
}

// CorrelationIDInterceptor creates an interceptor that adds a correlation ID
// generated by idFunc to every request.
func CorrelationIDInterceptor(headerName string, idFunc func() string) RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set(headerName, idFunc())
		return nil
	}
}

// RequestIDInterceptor adds a random UUID under the given header name.
// Shorthand for CorrelationIDInterceptor with a UUID source.
func RequestIDInterceptor(headerName string) RequestInterceptor {
	return CorrelationIDInterceptor(headerName, uuid.NewString)
}

// UserAgentInterceptor creates an interceptor that sets the User-Agent header.
func UserAgentInterceptor(userAgent string) RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("User-Agent", userAgent)
		return nil
	}
}
