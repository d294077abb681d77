package httpapi

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// scope is the instrumentation scope name for OpenTelemetry.
const scope = "github.com/helios-labs/apikit-go/httpapi"

// Config holds the HTTP transport configuration parameters.
// Use DefaultConfig() to get a properly initialized configuration,
// then modify specific fields as needed.
//
// Example:
//
//	cfg := httpapi.DefaultConfig()
//	cfg.Timeout = 5 * time.Second
//
//	client := httpapi.New(
//	    httpapi.WithConfig(cfg),
//	    httpapi.WithBaseURL("https://api.example.com"),
//	)
type Config struct {
	// Timeout is the default time limit for an entire call, including
	// connection establishment, TLS handshake, and reading the response
	// body. Each call may override it via RequestBuilder.Timeout.
	//
	// A Timeout of zero means no timeout. Be cautious with zero timeout
	// in production as it can lead to hanging requests.
	//
	// Default: 15s
	Timeout time.Duration

	// MaxIdleConns controls the maximum number of idle (keep-alive)
	// connections across all hosts combined.
	//
	// Default: 100
	MaxIdleConns int

	// MaxIdleConnsPerHost controls the maximum idle connections to keep
	// per host. If you primarily call one API host (the common case for
	// this client), set this close to MaxIdleConns.
	//
	// Default: 20
	MaxIdleConnsPerHost int

	// MaxConnsPerHost limits the total number of connections (idle +
	// active) per host. Zero means unlimited.
	//
	// Default: 100
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	// before being closed.
	//
	// Default: 90s
	IdleConnTimeout time.Duration

	// TLSHandshakeTimeout is the maximum time to wait for a TLS handshake.
	//
	// Default: 10s
	TLSHandshakeTimeout time.Duration

	// DialTimeout is the maximum time to wait for a TCP connection to be
	// established (before TLS handshake).
	//
	// Default: 5s
	DialTimeout time.Duration

	// KeepAlive specifies the TCP keep-alive probe interval.
	//
	// Default: 30s
	KeepAlive time.Duration

	// DisableCompression disables the "Accept-Encoding: gzip" header.
	//
	// Default: true (compression disabled)
	DisableCompression bool
}

// DefaultConfig returns a balanced configuration suitable for most use cases.
func DefaultConfig() Config {
	return Config{
		Timeout:             15 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		DisableCompression:  true,
	}
}

// internalConfig holds all configuration including transport, interceptor,
// and observability settings.
type internalConfig struct {
	// httpConfig is the HTTP transport configuration.
	httpConfig Config

	// BaseURL is prepended to relative request paths.
	BaseURL string

	// DefaultHeaders are applied to every request; per-call headers win
	// on key collision.
	DefaultHeaders http.Header

	// ServiceName identifies this client in traces and logs.
	ServiceName string

	// Debug enables request/response logging.
	Debug bool

	// Logger is the zerolog logger used for debug output.
	Logger zerolog.Logger

	// Chain holds the interceptors registered via options.
	Chain interceptorChain

	// TLSConfig specifies the TLS configuration. Nil means defaults.
	TLSConfig *tls.Config

	// MockTransport replaces the real transport in tests.
	MockTransport http.RoundTripper

	// TracerProvider and MeterProvider default to the otel globals.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	// Tracer and Meter are created from the providers after options run.
	Tracer trace.Tracer
	Meter  metric.Meter

	// Metrics holds the metric instruments.
	Metrics *clientMetrics
}

// newConfig creates a new internal config with defaults and applies options.
func newConfig(opts ...Option) *internalConfig {
	cfg := &internalConfig{
		httpConfig:     DefaultConfig(),
		DefaultHeaders: make(http.Header),
		Logger:         zerolog.Nop(),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Tracer = cfg.TracerProvider.Tracer(scope)
	cfg.Meter = cfg.MeterProvider.Meter(scope)

	// Instruments stay nil on registration failure; recording is a no-op then.
	cfg.Metrics, _ = newClientMetrics(cfg.Meter)

	return cfg
}

// buildTransport creates an http.Transport from the configuration.
func (cfg *internalConfig) buildTransport() http.RoundTripper {
	if cfg.MockTransport != nil {
		return cfg.MockTransport
	}

	hc := cfg.httpConfig
	dialer := &net.Dialer{
		Timeout:   hc.DialTimeout,
		KeepAlive: hc.KeepAlive,
	}

	return &http.Transport{
		DialContext:         dialer.DialContext,
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        hc.MaxIdleConns,
		MaxIdleConnsPerHost: hc.MaxIdleConnsPerHost,
		MaxConnsPerHost:     hc.MaxConnsPerHost,
		IdleConnTimeout:     hc.IdleConnTimeout,
		TLSHandshakeTimeout: hc.TLSHandshakeTimeout,
		DisableCompression:  hc.DisableCompression,
		TLSClientConfig:     cfg.TLSConfig,
	}
}

// baseAttributes returns common attributes for all spans and metrics.
func (cfg *internalConfig) baseAttributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 1)
	if cfg.ServiceName != "" {
		attrs = append(attrs, attribute.String("http.client.name", cfg.ServiceName))
	}
	return attrs
}

// Option configures the HTTP client.
type Option func(*internalConfig)

// WithConfig sets the HTTP transport configuration.
// Use DefaultConfig() as a starting point and customize as needed.
func WithConfig(c Config) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig = c
	}
}

// WithBaseURL sets the base URL prepended to relative request paths.
// Paths that already name a full scheme and host bypass it.
func WithBaseURL(baseURL string) Option {
	return func(cfg *internalConfig) {
		cfg.BaseURL = baseURL
	}
}

// WithTimeout sets the default per-call timeout, overriding the value
// from WithConfig. Individual calls may override it again via
// RequestBuilder.Timeout.
func WithTimeout(d time.Duration) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig.Timeout = d
	}
}

// WithDefaultHeader adds a header applied to every request.
// Per-call headers win on key collision.
func WithDefaultHeader(key, value string) Option {
	return func(cfg *internalConfig) {
		cfg.DefaultHeaders.Set(key, value)
	}
}

// WithDefaultHeaders adds multiple headers applied to every request.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(cfg *internalConfig) {
		for k, v := range headers {
			cfg.DefaultHeaders.Set(k, v)
		}
	}
}

// WithServiceName sets an identifier for this HTTP client in traces and
// debug logs. Added as "http.client.name" attribute on spans.
func WithServiceName(name string) Option {
	return func(cfg *internalConfig) {
		cfg.ServiceName = name
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(enabled bool) Option {
	return func(cfg *internalConfig) {
		cfg.Debug = enabled
	}
}

// WithLogger sets the zerolog logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *internalConfig) {
		cfg.Logger = logger
	}
}

// WithRequestInterceptor appends a request interceptor to the chain.
// Interceptors run in registration order before the network call.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(cfg *internalConfig) {
		cfg.Chain.request = append(cfg.Chain.request, i)
	}
}

// WithResponseInterceptor appends a response interceptor to the chain.
// Interceptors run in registration order on successful response bodies.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(cfg *internalConfig) {
		cfg.Chain.response = append(cfg.Chain.response, i)
	}
}

// WithErrorInterceptor appends an error interceptor to the chain.
// Interceptors run in registration order on every terminal Error.
func WithErrorInterceptor(i ErrorInterceptor) Option {
	return func(cfg *internalConfig) {
		cfg.Chain.errs = append(cfg.Chain.errs, i)
	}
}

// WithTLSConfig sets a custom TLS configuration.
func WithTLSConfig(tlsCfg *tls.Config) Option {
	return func(cfg *internalConfig) {
		cfg.TLSConfig = tlsCfg
	}
}

// WithTracerProvider sets a custom OpenTelemetry TracerProvider.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *internalConfig) {
		cfg.TracerProvider = tp
	}
}

// WithMeterProvider sets a custom OpenTelemetry MeterProvider.
// Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *internalConfig) {
		cfg.MeterProvider = mp
	}
}

// WithMockTransport replaces the underlying transport, bypassing the real
// network. Intended for tests.
func WithMockTransport(rt http.RoundTripper) Option {
	return func(cfg *internalConfig) {
		cfg.MockTransport = rt
	}
}
