package httpapi

import (
	"context"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// Response wraps http.Response with cached body reading and status helpers.
//
// The body is read once during call execution and reused afterwards, so
// callers never race the pipeline on the body stream.
type Response struct {
	// Response embeds the standard http.Response.
	// All http.Response fields are accessible directly,
	// e.g. resp.StatusCode, resp.Header.Get("Content-Type").
	*http.Response

	// request is the original HTTP request that produced this response.
	request *http.Request

	// body is the cached raw response body.
	body []byte

	// bodyRead tracks whether the body stream has been drained.
	bodyRead bool

	// payload is the body after the response-interceptor chain ran.
	// Only populated on the success path.
	payload []byte
}

// Bytes returns the raw response body. The body is read and cached on
// first access; subsequent calls return the cached value.
func (r *Response) Bytes() ([]byte, error) {
	if r.bodyRead {
		return r.body, nil
	}

	defer r.Response.Body.Close()
	body, err := io.ReadAll(r.Response.Body)
	if err != nil {
		return nil, err
	}

	r.body = body
	r.bodyRead = true
	return r.body, nil
}

// String returns the raw response body as a string.
func (r *Response) String() (string, error) {
	body, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Payload returns the body after the response-interceptor chain ran
// (envelope already unwrapped, if an unwrapping interceptor is registered).
// Nil for failed calls.
func (r *Response) Payload() []byte {
	return r.payload
}

// IsSuccess returns true if the response status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the response status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Envelope is the wrapper object JSON APIs commonly return around their
// payload: the data itself plus response metadata.
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message,omitempty"`
	Success   bool            `json:"success,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// UnwrapEnvelope returns a response interceptor that unwraps enveloped
// payloads: if the body is an envelope object containing a data field,
// only that field reaches the caller's decode target. Bodies that are
// not envelopes pass through unchanged.
//
//	client := httpapi.New(
//	    httpapi.WithBaseURL(apiURL),
//	    httpapi.WithResponseInterceptor(httpapi.UnwrapEnvelope()),
//	)
func UnwrapEnvelope() ResponseInterceptor {
	return func(_ context.Context, body []byte) ([]byte, error) {
		var env Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return body, nil
		}
		// A JSON null data field decodes into RawMessage("null"), which is
		// not an envelope payload either.
		if len(env.Data) > 0 && string(env.Data) != "null" {
			return env.Data, nil
		}
		return body, nil
	}
}
