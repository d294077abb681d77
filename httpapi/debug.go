package httpapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// logRequest logs the outgoing request when debug mode is enabled.
func logRequest(logger zerolog.Logger, operation string, req *http.Request) {
	logger.Debug().
		Str("operation", operation).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("host", req.Host).
		Msg("HTTP request")
}

// logResponse logs the received response when debug mode is enabled.
func logResponse(logger zerolog.Logger, operation string, resp *http.Response, duration time.Duration) {
	logger.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Str("status_text", resp.Status).
		Dur("duration_ms", duration).
		Int64("content_length", resp.ContentLength).
		Msg("HTTP response")
}
