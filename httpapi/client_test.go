package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []Option
		wantTimeout time.Duration
		wantBaseURL string
	}{
		{
			name:        "given no options, then uses defaults",
			opts:        nil,
			wantTimeout: 15 * time.Second,
		},
		{
			name:        "given custom config, then uses that timeout",
			opts:        []Option{WithConfig(Config{Timeout: 10 * time.Second})},
			wantTimeout: 10 * time.Second,
		},
		{
			name:        "given WithTimeout, then overrides config timeout",
			opts:        []Option{WithTimeout(3 * time.Second)},
			wantTimeout: 3 * time.Second,
		},
		{
			name:        "given base URL, then stores it",
			opts:        []Option{WithBaseURL("http://localhost:3001/api")},
			wantTimeout: 15 * time.Second,
			wantBaseURL: "http://localhost:3001/api",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := New(tt.opts...)

			assert.NotNil(t, client)
			assert.NotNil(t, client.HTTP().Transport)
			assert.Equal(t, tt.wantTimeout, client.config.httpConfig.Timeout)
			assert.Equal(t, tt.wantBaseURL, client.BaseURL())

			_, isOtel := client.HTTP().Transport.(*otelTransport)
			assert.True(t, isOtel, "expected instrumented transport")
		})
	}
}

func TestClient_HTTPStatusPropagation(t *testing.T) {
	t.Parallel()

	statuses := []int{400, 401, 403, 404, 409, 422, 500, 502, 503}

	for _, status := range statuses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := New(WithBaseURL(server.URL))
		_, err := client.Request("Test").Get(context.Background(), "/r")

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr, "status %d", status)
		assert.Equal(t, status, apiErr.Status, "error status must equal the server's status code")

		server.Close()
	}
}

// TestClient_GetUsersScenario covers the full happy path: a relative path
// against a configured base URL, default JSON headers, no auth token, and
// an enveloped list payload unwrapped for the caller.
func TestClient_GetUsersScenario(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport().StubJSON(http.StatusOK, map[string]any{
		"data":      []map[string]string{{"id": "1"}},
		"message":   "ok",
		"success":   true,
		"timestamp": "2024-01-01T00:00:00Z",
	})

	client := New(
		WithBaseURL("http://localhost:3001/api"),
		WithDefaultHeader("Content-Type", "application/json"),
		WithDefaultHeader("Accept", "application/json"),
		WithResponseInterceptor(UnwrapEnvelope()),
		WithMockTransport(mock),
	)

	var users []struct {
		ID string `json:"id"`
	}
	resp, err := client.Request("GetUsers").
		Decode(&users).
		Get(context.Background(), "/users")
	require.NoError(t, err)

	assert.True(t, resp.IsSuccess())
	require.Len(t, users, 1)
	assert.Equal(t, "1", users[0].ID)

	req := mock.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "http://localhost:3001/api/users", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestClient_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := client.Request("Concurrent").Get(context.Background(), "/r")
			done <- err
		}()
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, <-done)
	}
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf syncBuffer
	logger := newTestLogger(&buf)

	client := New(
		WithBaseURL(server.URL),
		WithDebug(true),
		WithLogger(logger),
	)

	_, err := client.Request("Ping").Get(context.Background(), "/ping")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "HTTP request")
	assert.Contains(t, out, "HTTP response")
	assert.Contains(t, out, "Ping")
}
