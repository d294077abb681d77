package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTransport_StubResponse(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport().StubResponse(http.StatusOK, `{"ok":true}`)
	client := New(
		WithBaseURL("http://api.test"),
		WithMockTransport(mock),
	)

	resp, err := client.Request("Test").Get(context.Background(), "/anything")
	require.NoError(t, err)

	body, err := resp.String()
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, body)
}

func TestMockTransport_StubPath(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport().
		StubPath("/api/users", http.StatusOK, `[{"id":"1"}]`).
		StubResponse(http.StatusNotFound, ``)

	client := New(
		WithBaseURL("http://api.test/api"),
		WithMockTransport(mock),
	)

	resp, err := client.Request("GetUsers").Get(context.Background(), "/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = client.Request("GetOther").Get(context.Background(), "/other")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestMockTransport_StubError(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport().StubError(errors.New("connection refused"))
	client := New(
		WithBaseURL("http://api.test"),
		WithMockTransport(mock),
	)

	_, err := client.Request("Test").Get(context.Background(), "/r")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, CodeNetworkError, apiErr.Code)
}

func TestMockTransport_RecordsRequests(t *testing.T) {
	t.Parallel()

	var hooked int
	mock := NewMockTransport().
		StubResponse(http.StatusOK, ``).
		OnRequest(func(_ *http.Request) { hooked++ })

	client := New(
		WithBaseURL("http://api.test"),
		WithMockTransport(mock),
	)
	ctx := context.Background()

	_, err := client.Request("First").Get(ctx, "/a")
	require.NoError(t, err)
	_, err = client.Request("Second").Post(ctx, "/b")
	require.NoError(t, err)

	assert.Equal(t, 2, mock.RequestCount())
	assert.Equal(t, 2, hooked)
	assert.Equal(t, http.MethodPost, mock.LastRequest().Method)
	assert.Len(t, mock.Requests(), 2)
}

func TestMockTransport_NoStubFails(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	client := New(
		WithBaseURL("http://api.test"),
		WithMockTransport(mock),
	)

	_, err := client.Request("Test").Get(context.Background(), "/r")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Contains(t, apiErr.Message, "no stub found")
}

func TestMockTransport_Reset(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport().StubResponse(http.StatusOK, ``)
	client := New(
		WithBaseURL("http://api.test"),
		WithMockTransport(mock),
	)

	_, err := client.Request("Test").Get(context.Background(), "/r")
	require.NoError(t, err)

	mock.Reset()
	assert.Equal(t, 0, mock.RequestCount())
	assert.Nil(t, mock.LastRequest())
}
