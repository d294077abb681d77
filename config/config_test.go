package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "myapp")
	t.Setenv("APP_VERSION", "1.2.3")
	t.Setenv("APP_DESCRIPTION", "test application")
	t.Setenv("API_BASE_URL", "http://localhost:3001/api")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	app, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "myapp", app.AppName)
	assert.Equal(t, "1.2.3", app.AppVersion)
	assert.Equal(t, "test application", app.AppDescription)
	assert.Equal(t, "http://localhost:3001/api", app.APIBaseURL)
	assert.Equal(t, "development", app.Environment)
	assert.Equal(t, 10*time.Second, app.APITimeout())
	assert.False(t, app.AnalyticsEnabled.Bool())
	assert.False(t, app.DebugEnabled.Bool())
	assert.True(t, app.IsDevelopment())
	assert.False(t, app.IsProduction())
}

func TestLoad_MissingRequiredFails(t *testing.T) {
	t.Setenv("APP_NAME", "myapp")
	t.Setenv("APP_VERSION", "1.2.3")
	t.Setenv("APP_DESCRIPTION", "test application")
	// API_BASE_URL intentionally absent.

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedTimeoutFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_TIMEOUT", "2500")
	t.Setenv("DEBUG_ENABLED", "true")
	t.Setenv("ANALYTICS_ENABLED", "1")

	app, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", app.Environment)
	assert.True(t, app.IsProduction())
	assert.Equal(t, 2500*time.Millisecond, app.APITimeout())
	assert.True(t, app.DebugEnabled.Bool())
	assert.True(t, app.AnalyticsEnabled.Bool())
}

func TestFlag_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "true", want: true},
		{raw: "1", want: true},
		{raw: "false", want: false},
		{raw: "0", want: false},
		{raw: "yes", want: false},
		{raw: "TRUE", want: false},
		{raw: "", want: false},
	}

	for _, tt := range tests {
		var f Flag
		require.NoError(t, f.Decode(tt.raw))
		assert.Equal(t, tt.want, f.Bool(), "raw %q", tt.raw)
	}
}

func TestClientOptions(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_TIMEOUT", "500")

	app, err := Load()
	require.NoError(t, err)

	opts := app.ClientOptions(zerolog.Nop())
	assert.NotEmpty(t, opts)
}
