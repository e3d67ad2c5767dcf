// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// BaseURL is the public URL of the frontend, used for OAuth and
	// payment-completion redirects. No trailing slash. Required.
	BaseURL string `env:"BASE_URL,required"`

	// GoogleClientID and GoogleClientSecret identify the OAuth application
	// at the identity provider. Required.
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`

	// StripeSecretKey authenticates payment-link creation. Required.
	StripeSecretKey string `env:"STRIPE_SECRET_KEY,required"`

	// GeminiAPIKey authenticates itinerary generation. Required.
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`

	// UnsplashAccessKey authenticates trip photo lookups. Optional: when
	// empty, trips are created without images.
	UnsplashAccessKey string `env:"UNSPLASH_ACCESS_KEY"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}
