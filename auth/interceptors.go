package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/helios-labs/apikit-go/httpapi"
)

// BearerInterceptor returns a request interceptor that injects
// "Authorization: Bearer <token>" from the store when a token is present.
// Calls without a stored token go out without the header.
func BearerInterceptor(store TokenStore) httpapi.RequestInterceptor {
	return func(ctx context.Context, req *http.Request) error {
		token, err := store.Token(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// UnauthorizedInterceptor returns an error interceptor implementing the
// auth-failure policy: on a 401 it clears both stored credential keys and
// invokes the redirect hook (typically pointing the user agent at a login
// entry point). It runs regardless of which call triggered the 401, and
// the pipeline still re-raises the error afterwards so the caller's own
// failure path executes.
//
// A nil redirect skips the navigation step but still clears the store.
func UnauthorizedInterceptor(store TokenStore, redirect func(ctx context.Context)) httpapi.ErrorInterceptor {
	return func(ctx context.Context, apiErr *httpapi.Error) {
		if apiErr.Status != http.StatusUnauthorized {
			return
		}
		// Clearing must not mask the original 401.
		_ = store.Clear(ctx)
		if redirect != nil {
			redirect(ctx)
		}
	}
}

// DebugLogInterceptor returns an error interceptor that logs every failed
// call through the given logger. Intended for debug-enabled builds; wire
// it only when the debug flag is set.
func DebugLogInterceptor(logger zerolog.Logger) httpapi.ErrorInterceptor {
	return func(_ context.Context, apiErr *httpapi.Error) {
		logger.Debug().
			Int("status", apiErr.Status).
			Str("code", apiErr.Code).
			Str("message", apiErr.Message).
			Msg("API call failed")
	}
}
