package httpapi

import (
	"net/http"
	"net/url"
)

// Client is a long-lived HTTP API client with fluent request building,
// ordered interceptor chains, and OpenTelemetry instrumentation.
//
// Create a Client using New():
//
//	client := httpapi.New(
//	    httpapi.WithBaseURL("http://localhost:3001/api"),
//	    httpapi.WithDefaultHeader("Content-Type", "application/json"),
//	)
//
//	var users []User
//	_, err := client.Request("GetUsers").
//	    Decode(&users).
//	    Get(ctx, "/users")
//
// Interceptor chains are read on every call and must be fully registered
// before the client serves concurrent traffic.
type Client struct {
	// httpClient is the underlying HTTP client with transport chain.
	httpClient *http.Client

	// config holds all client configuration.
	config *internalConfig

	// baseURL is the base URL for relative request paths.
	baseURL string

	// defaultHeaders are applied to all requests.
	defaultHeaders http.Header

	// chain holds the three ordered interceptor chains.
	chain interceptorChain
}

// New creates a Client with production-ready defaults and OpenTelemetry
// instrumentation.
//
// Unspecified fields fall back to DefaultConfig(). The client is reusable
// across many concurrent calls; per-call state lives in the RequestBuilder.
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)
	transport := cfg.buildTransport()
	instrumented := newOtelTransport(transport, cfg)

	// No http.Client.Timeout here: the per-call context deadline is the
	// single timeout guard, so call overrides work.
	httpClient := &http.Client{Transport: instrumented}

	return &Client{
		httpClient:     httpClient,
		config:         cfg,
		baseURL:        cfg.BaseURL,
		defaultHeaders: cfg.DefaultHeaders,
		chain:          cfg.Chain,
	}
}

// HTTP returns the underlying *http.Client for advanced use cases, such
// as passing the instrumented client to third-party libraries.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// BaseURL returns the client's configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddRequestInterceptor appends a request interceptor to the chain.
// There is no removal; order of registration is order of application.
// Safe to call only during setup, before concurrent traffic.
func (c *Client) AddRequestInterceptor(i RequestInterceptor) {
	c.chain.request = append(c.chain.request, i)
}

// AddResponseInterceptor appends a response interceptor to the chain.
// Safe to call only during setup, before concurrent traffic.
func (c *Client) AddResponseInterceptor(i ResponseInterceptor) {
	c.chain.response = append(c.chain.response, i)
}

// AddErrorInterceptor appends an error interceptor to the chain.
// Safe to call only during setup, before concurrent traffic.
func (c *Client) AddErrorInterceptor(i ErrorInterceptor) {
	c.chain.errs = append(c.chain.errs, i)
}

// Request creates a new RequestBuilder for the given operation name.
//
// The operation name is used for span naming and debug logging. The
// builder is transient: construct one per call and discard it.
//
// Example:
//
//	resp, err := client.Request("CreateUser").
//	    Body(user).
//	    Post(ctx, "/users")
func (c *Client) Request(operationName string) *RequestBuilder {
	return &RequestBuilder{
		client:        c,
		operationName: operationName,
		headers:       make(http.Header),
		pathParams:    make(map[string]string),
		queryParams:   make(url.Values),
	}
}
