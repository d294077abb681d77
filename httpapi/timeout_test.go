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

func TestTimeout_PerCallOverride(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))

	start := time.Now()
	_, err := client.Request("Slow").
		Timeout(50 * time.Millisecond).
		Get(context.Background(), "/slow")
	elapsed := time.Since(start)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, CodeTimeout, apiErr.Code)
	assert.True(t, apiErr.IsTimeout())
	assert.Less(t, elapsed, 1*time.Second, "call must abort at the timeout, not wait for the server")
}

func TestTimeout_ClientDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(
		WithBaseURL(server.URL),
		WithTimeout(50*time.Millisecond),
	)

	_, err := client.Request("Slow").Get(context.Background(), "/slow")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeTimeout, apiErr.Code)
}

func TestTimeout_FastCallSucceeds(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(
		WithBaseURL(server.URL),
		WithTimeout(5*time.Second),
	)

	resp, err := client.Request("Fast").Get(context.Background(), "/fast")
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
}
