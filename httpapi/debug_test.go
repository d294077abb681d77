package httpapi

import (
	"bytes"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// syncBuffer is a goroutine-safe bytes.Buffer for capturing log output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(w *syncBuffer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel)
}

func TestLogRequest(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	logger := newTestLogger(&buf)

	req := &http.Request{
		Method: http.MethodPost,
		URL:    &url.URL{Scheme: "http", Host: "host", Path: "/api/users"},
		Host:   "host",
	}
	logRequest(logger, "CreateUser", req)

	out := buf.String()
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, "/api/users")
	assert.Contains(t, out, "CreateUser")
}

func TestLogResponse(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	logger := newTestLogger(&buf)

	resp := &http.Response{
		StatusCode:    http.StatusCreated,
		Status:        "201 Created",
		ContentLength: 42,
	}
	logResponse(logger, "CreateUser", resp, 10*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, "CreateUser")
}
