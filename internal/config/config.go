// Package config loads the backend configuration from the environment.
package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds all settings the backend reads from the environment.
type Config struct {
	// Gin runs in release mode unless explicitly overridden, see
	// https://gin-gonic.com/docs/deployment/
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// LogFormat can be set to "human" for a console writer. The default is
	// JSON in release mode and human readable in debug mode.
	LogFormat string `env:"LOG_FORMAT"`

	// DBPath is the path of the sqlite database file.
	DBPath string `env:"DB_PATH" envDefault:"data/schemes.db"`

	// APIURL is the base URL the backend is reachable at. It is used to
	// construct the links in responses.
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`

	// APIKey is compared against the X-API-Key header on every /v1 request.
	// An empty key disables the check.
	APIKey string `env:"API_KEY"`

	// CORSAllowOrigins is a space separated list of allowed origins. CORS
	// headers are only sent when it is set.
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:" "`

	// EnablePprof exposes the pprof routes under /debug/pprof when true.
	EnablePprof bool `env:"ENABLE_PPROF"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.Parse(cfg.APIURL); err != nil {
		return Config{}, fmt.Errorf("API_URL is not a valid URL: %w", err)
	}

	return cfg, nil
}

// BaseURL returns the parsed API URL.
func (c Config) BaseURL() *url.URL {
	// Load already validated the URL
	u, _ := url.Parse(c.APIURL)
	return u
}
