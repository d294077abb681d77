// Package httpapi provides a production-ready HTTP API client with ordered
// interceptor chains, per-call timeout enforcement, typed errors, and
// OpenTelemetry instrumentation.
//
// # Quick Start
//
// Basic usage with the fluent request builder:
//
//	client := httpapi.New(
//	    httpapi.WithBaseURL("http://localhost:3001/api"),
//	    httpapi.WithDefaultHeader("Content-Type", "application/json"),
//	)
//
//	// Simple GET request with response decoding
//	var users []User
//	resp, err := client.Request("GetUsers").
//	    Decode(&users).
//	    Get(ctx, "/users")
//
//	// POST with JSON body
//	resp, err := client.Request("CreateUser").
//	    Body(newUser).
//	    Post(ctx, "/users")
//
// # Pipeline
//
// Every verb delegates to a single execution path:
//
//	caller -> request interceptors -> network call (timeout guard) ->
//	HTTP status check -> response interceptors (success) or
//	error interceptors (failure) -> caller
//
// Each call produces exactly one decoded payload or one *Error. The
// timeout guard cancels the in-flight network operation and surfaces as
// an Error with Status 0 and Code "timeout".
//
// # Interceptors
//
// Three independent ordered chains belong to each client. Registration
// happens at setup, before concurrent traffic; there is no removal:
//
//	client := httpapi.New(
//	    httpapi.WithBaseURL(apiURL),
//	    httpapi.WithRequestInterceptor(httpapi.AuthBearerInterceptor(token)),
//	    httpapi.WithResponseInterceptor(httpapi.UnwrapEnvelope()),
//	    httpapi.WithErrorInterceptor(func(ctx context.Context, e *httpapi.Error) {
//	        log.Debug().Int("status", e.Status).Msg("api call failed")
//	    }),
//	)
//
// Error interceptors observe and may mutate the terminal error but cannot
// suppress it: the pipeline always re-raises after the chain completes.
//
// # Errors
//
// All failures surface as *Error. Network-level failures (DNS, connect,
// timeout) carry Status 0, distinct from any real HTTP status; HTTP-level
// failures carry the server's status code and, when the error body
// supplies them, its message, code tag, and details:
//
//	var apiErr *httpapi.Error
//	if errors.As(err, &apiErr) {
//	    switch {
//	    case apiErr.IsTimeout():
//	        // retry is the caller's responsibility
//	    case apiErr.Status == http.StatusNotFound:
//	        // missing resource
//	    }
//	}
//
// # Observability
//
// The client emits OpenTelemetry spans per request and the metrics
// http.client.request.duration, http.client.request.errors,
// http.client.active_requests, and request/response body sizes. Providers
// default to the otel globals and can be overridden with
// WithTracerProvider / WithMeterProvider.
//
// # Testing
//
// MockTransport stubs responses without a network:
//
//	mock := httpapi.NewMockTransport().StubPath("/users", 200, `{"data":[]}`)
//	client := httpapi.New(
//	    httpapi.WithBaseURL("http://api.test"),
//	    httpapi.WithMockTransport(mock),
//	)
package httpapi
