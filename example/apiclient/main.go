package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/helios-labs/apikit-go/auth"
	"github.com/helios-labs/apikit-go/config"
	"github.com/helios-labs/apikit-go/httpapi"
)

// Demonstrates the full client wiring: env-sourced configuration, a
// file-backed session store, bearer injection, envelope unwrapping, and
// the 401 auth-failure policy.
//
// Run against any JSON API:
//
//	APP_NAME=apiclient APP_VERSION=0.1.0 APP_DESCRIPTION=demo \
//	API_BASE_URL=http://localhost:3001/api DEBUG_ENABLED=true \
//	go run .
func main() {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	store := auth.NewFileStore(".session.json")

	opts := append(cfg.ClientOptions(logger),
		httpapi.WithRequestInterceptor(auth.BearerInterceptor(store)),
		httpapi.WithResponseInterceptor(httpapi.UnwrapEnvelope()),
		httpapi.WithErrorInterceptor(auth.UnauthorizedInterceptor(store, func(_ context.Context) {
			logger.Warn().Msg("session expired, log in again")
		})),
	)
	if cfg.DebugEnabled.Bool() {
		opts = append(opts, httpapi.WithErrorInterceptor(auth.DebugLogInterceptor(logger)))
	}
	client := httpapi.New(opts...)

	ctx := context.Background()

	var users []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	_, err = client.Request("GetUsers").
		Decode(&users).
		Get(ctx, "/users")
	if err != nil {
		var apiErr *httpapi.Error
		if errors.As(err, &apiErr) && apiErr.IsTimeout() {
			logger.Error().Msg("API did not answer in time")
		} else {
			logger.Error().Err(err).Msg("fetching users failed")
		}
		os.Exit(1)
	}

	logger.Info().Int("count", len(users)).Msg("fetched users")
	for _, u := range users {
		logger.Info().Str("id", u.ID).Str("name", u.Name).Msg("user")
	}
}
