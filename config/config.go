// Package config loads process-start configuration from the environment.
//
// Configuration is an explicit struct constructed once at startup and
// passed to whatever builds the API client; there is no package-level
// singleton. An optional .env file is read first, then the environment
// is decoded with struct tags. Missing required values and malformed
// numerics fail loading.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/helios-labs/apikit-go/httpapi"
)

// Flag is a boolean configuration value with lenient parsing:
// "true" and "1" parse as true, anything else as false. A malformed
// value therefore never fails process start, unlike numeric fields.
type Flag bool

// Decode implements envdecode.Decoder.
func (f *Flag) Decode(repl string) error {
	*f = repl == "true" || repl == "1"
	return nil
}

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool {
	return bool(f)
}

// App is the process-wide application configuration.
type App struct {
	// Application identity (required).
	AppName        string `env:"APP_NAME,required"`
	AppVersion     string `env:"APP_VERSION,required"`
	AppDescription string `env:"APP_DESCRIPTION,required"`

	// Environment is the deployment mode flag.
	Environment string `env:"APP_ENV,default=development"`

	// APIBaseURL is the base endpoint for all API calls (required).
	APIBaseURL string `env:"API_BASE_URL,required"`

	// APITimeoutMS is the default API call timeout in milliseconds.
	// A malformed value fails loading.
	APITimeoutMS int `env:"API_TIMEOUT,default=10000"`

	// AnalyticsEnabled toggles usage analytics.
	AnalyticsEnabled Flag `env:"ANALYTICS_ENABLED,default=false"`

	// DebugEnabled toggles diagnostic logging.
	DebugEnabled Flag `env:"DEBUG_ENABLED,default=false"`
}

// Load reads an optional .env file, then decodes the environment into an
// App. It returns an error when a required value is missing or a numeric
// value is malformed; callers are expected to fail process start on it.
func Load() (App, error) {
	// Absence of a .env file is not an error; real environment wins anyway.
	_ = godotenv.Load()

	var app App
	if err := envdecode.StrictDecode(&app); err != nil {
		return App{}, fmt.Errorf("config: decode environment: %w", err)
	}
	return app, nil
}

// APITimeout returns the API timeout as a duration.
func (a App) APITimeout() time.Duration {
	return time.Duration(a.APITimeoutMS) * time.Millisecond
}

// IsDevelopment reports whether the app runs in development mode.
func (a App) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction reports whether the app runs in production mode.
func (a App) IsProduction() bool {
	return a.Environment == "production"
}

// ClientOptions translates the configuration into httpapi options:
// base URL, timeout, JSON default headers, and debug logging.
func (a App) ClientOptions(logger zerolog.Logger) []httpapi.Option {
	return []httpapi.Option{
		httpapi.WithBaseURL(a.APIBaseURL),
		httpapi.WithTimeout(a.APITimeout()),
		httpapi.WithDefaultHeader("Content-Type", "application/json"),
		httpapi.WithDefaultHeader("Accept", "application/json"),
		httpapi.WithServiceName(a.AppName),
		httpapi.WithDebug(a.DebugEnabled.Bool()),
		httpapi.WithLogger(logger),
	}
}
