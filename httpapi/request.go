package httpapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// RequestBuilder provides a fluent API for constructing a single call.
//
// A builder is created per call via Client.Request() and discarded after
// the verb method returns. It carries the per-call overrides the client
// configuration allows: headers, body, decode target, timeout, base URL.
type RequestBuilder struct {
	client        *Client
	operationName string
	path          string
	pathParams    map[string]string
	queryParams   url.Values
	headers       http.Header
	body          io.Reader
	contentType   string
	result        any
	timeout       time.Duration
	baseURL       string
}

// Path sets the request path.
//
// A relative path is joined to the effective base URL with exactly one
// separating slash. A path naming a full scheme and host is used verbatim.
// Path parameters can be specified using {name} syntax and filled with
// PathParam().
func (rb *RequestBuilder) Path(path string) *RequestBuilder {
	rb.path = path
	return rb
}

// PathParam sets a path parameter value, replacing {key} in the path.
func (rb *RequestBuilder) PathParam(key, value string) *RequestBuilder {
	rb.pathParams[key] = value
	return rb
}

// Query adds a single query parameter.
func (rb *RequestBuilder) Query(key, value string) *RequestBuilder {
	rb.queryParams.Set(key, value)
	return rb
}

// Queries adds multiple query parameters.
func (rb *RequestBuilder) Queries(params map[string]string) *RequestBuilder {
	for k, v := range params {
		rb.queryParams.Set(k, v)
	}
	return rb
}

// Header sets a single request header. Per-call headers win over the
// client's default headers on key collision.
func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	rb.headers.Set(key, value)
	return rb
}

// Headers sets multiple request headers.
func (rb *RequestBuilder) Headers(headers map[string]string) *RequestBuilder {
	for k, v := range headers {
		rb.headers.Set(k, v)
	}
	return rb
}

// Body sets the request body with automatic content type detection.
//
// Encoding rules:
//   - struct/map: JSON (Content-Type: application/json)
//   - string: raw text (Content-Type: text/plain)
//   - []byte: raw bytes (Content-Type: application/octet-stream)
//   - io.Reader: passthrough
//   - url.Values: form encoded (Content-Type: application/x-www-form-urlencoded)
func (rb *RequestBuilder) Body(v any) *RequestBuilder {
	if v == nil {
		return rb
	}

	switch body := v.(type) {
	case string:
		rb.body = strings.NewReader(body)
		rb.contentType = "text/plain; charset=utf-8"
	case []byte:
		rb.body = bytes.NewReader(body)
		rb.contentType = "application/octet-stream"
	case io.Reader:
		rb.body = body
	case url.Values:
		rb.body = strings.NewReader(body.Encode())
		rb.contentType = "application/x-www-form-urlencoded"
	default:
		return rb.BodyJSON(v)
	}
	return rb
}

// BodyJSON explicitly encodes the body as JSON.
func (rb *RequestBuilder) BodyJSON(v any) *RequestBuilder {
	if v == nil {
		return rb
	}
	data, err := json.Marshal(v)
	if err != nil {
		// Surfaced when the request executes.
		rb.body = &bodyEncodingError{err: err}
		return rb
	}
	rb.body = bytes.NewReader(data)
	rb.contentType = "application/json"
	return rb
}

// Decode sets the target for automatic response body decoding.
//
// On a successful (2xx) response the body passes through the response
// interceptor chain and is then decoded into the target, so callers
// always receive the final, unwrapped payload shape.
func (rb *RequestBuilder) Decode(v any) *RequestBuilder {
	rb.result = v
	return rb
}

// Timeout overrides the client's default timeout for this call only.
func (rb *RequestBuilder) Timeout(d time.Duration) *RequestBuilder {
	rb.timeout = d
	return rb
}

// BaseURL overrides the client's base URL for this call only.
func (rb *RequestBuilder) BaseURL(baseURL string) *RequestBuilder {
	rb.baseURL = baseURL
	return rb
}

// Get executes a GET request.
func (rb *RequestBuilder) Get(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodGet)
}

// Post executes a POST request.
func (rb *RequestBuilder) Post(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodPost)
}

// Put executes a PUT request.
func (rb *RequestBuilder) Put(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodPut)
}

// Patch executes a PATCH request.
func (rb *RequestBuilder) Patch(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodPatch)
}

// Delete executes a DELETE request.
func (rb *RequestBuilder) Delete(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodDelete)
}

// execute is the single shared pipeline behind all verbs:
// header merge -> request interceptors -> timeout guard -> network call ->
// status branch -> response interceptors + decode, or error interceptors.
//
// Exactly one *Error or one decoded payload comes out of every call.
func (rb *RequestBuilder) execute(ctx context.Context, method string) (*Response, error) {
	targetURL, err := rb.buildURL()
	if err != nil {
		return nil, rb.fail(ctx, err)
	}

	if encErr, ok := rb.body.(*bodyEncodingError); ok {
		return nil, rb.fail(ctx, encErr.err)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, rb.body)
	if err != nil {
		return nil, rb.fail(ctx, err)
	}

	// Defaults first, then per-call headers so caller values win.
	for k, v := range rb.client.defaultHeaders {
		req.Header[k] = v
	}
	for k, v := range rb.headers {
		req.Header[k] = v
	}
	if rb.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", rb.contentType)
	}

	if err := rb.client.chain.applyRequest(ctx, req); err != nil {
		return nil, rb.fail(ctx, err)
	}

	// Arm the timeout guard after the interceptors: credential refresh
	// time does not count against the network budget.
	timeout := rb.timeout
	if timeout == 0 {
		timeout = rb.client.config.httpConfig.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	cfg := rb.client.config
	if cfg.Debug {
		logRequest(cfg.Logger, rb.operationName, req)
	}

	start := time.Now()
	httpResp, err := rb.client.httpClient.Do(req)
	if err != nil {
		return nil, rb.fail(ctx, err)
	}
	duration := time.Since(start)

	if cfg.Debug {
		logResponse(cfg.Logger, rb.operationName, httpResp, duration)
	}

	resp := &Response{Response: httpResp, request: req}

	body, err := resp.Bytes()
	if err != nil {
		return resp, rb.fail(ctx, err)
	}

	if !resp.IsSuccess() {
		apiErr := newHTTPError(resp.StatusCode, body)
		rb.client.chain.applyError(ctx, apiErr)
		return resp, apiErr
	}

	body, err = rb.client.chain.applyResponse(ctx, body)
	if err != nil {
		return resp, rb.fail(ctx, err)
	}
	resp.payload = body

	if rb.result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, rb.result); err != nil {
			return resp, rb.fail(ctx, err)
		}
	}

	return resp, nil
}

// fail wraps err into a network-level Error (unless it already is one)
// and routes it through the error-interceptor chain before re-raising.
func (rb *RequestBuilder) fail(ctx context.Context, err error) *Error {
	apiErr := wrapTransportError(err)
	rb.client.chain.applyError(ctx, apiErr)
	return apiErr
}

// buildURL constructs the full URL from base URL, path, and query params.
//
// A path naming a full scheme+host bypasses the base URL entirely.
// Otherwise the effective base (per-call override, else client default)
// and path are joined with exactly one separating slash, regardless of
// leading/trailing slashes on either side.
func (rb *RequestBuilder) buildURL() (string, error) {
	path := rb.path
	for k, v := range rb.pathParams {
		path = strings.ReplaceAll(path, "{"+k+"}", url.PathEscape(v))
	}

	base := rb.baseURL
	if base == "" {
		base = rb.client.baseURL
	}

	var fullURL string
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		fullURL = path
	case base != "":
		fullURL = strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	default:
		fullURL = path
	}

	if len(rb.queryParams) > 0 {
		u, err := url.Parse(fullURL)
		if err != nil {
			return "", err
		}
		q := u.Query()
		for k, v := range rb.queryParams {
			for _, vv := range v {
				q.Add(k, vv)
			}
		}
		u.RawQuery = q.Encode()
		fullURL = u.String()
	}

	return fullURL, nil
}

// bodyEncodingError is an io.Reader that returns an error.
type bodyEncodingError struct {
	err error
}

func (e *bodyEncodingError) Read(_ []byte) (int, error) {
	return 0, e.err
}
