// Package config loads the service configuration from the environment
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"

	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
)

// Export store kinds
const (
	ExportStoreMemory = "memory"
	ExportStoreBadger = "badger"
)

// Server configuration
type Server struct {
	// ListenAddr is the address the HTTP server binds to
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Backend configuration for the external rate service
type Backend struct {
	// URL is the base URL serving /currencies and /fxrate
	URL string `envconfig:"BACKEND_URL" default:"http://localhost:5000"`

	// Timeout applies to each backend request
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
}

// Export configuration for parked CSV downloads
type Export struct {
	// Store selects "memory" or "badger"
	Store string `envconfig:"EXPORT_STORE" default:"memory"`

	// TTL is how long an unclaimed export stays downloadable
	TTL time.Duration `envconfig:"EXPORT_TTL" default:"15m"`

	// BadgerDir is the database directory when Store is "badger"
	BadgerDir string `envconfig:"EXPORT_BADGER_DIR" default:"./data/exports"`
}

// Log configuration
type Log struct {
	// Format can be "text" or "json"
	Format string `envconfig:"LOG_FORMAT" default:"json"`

	// Level is one of debug, info, warn, error, fatal
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Config is the configuration for the application
type Config struct {
	Server  Server
	Backend Backend
	Export  Export
	Log     Log
}

// New reads the configuration from the environment
func New() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.ListenAddr == "" {
		result = multierror.Append(result, errors.New("listen address must not be empty"))
	}

	u, err := url.Parse(c.Backend.URL)
	switch {
	case err != nil:
		result = multierror.Append(result, fmt.Errorf("invalid backend URL: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		result = multierror.Append(result, fmt.Errorf("backend URL must be http or https: %q", c.Backend.URL))
	case u.Host == "":
		result = multierror.Append(result, fmt.Errorf("backend URL has no host: %q", c.Backend.URL))
	}

	if c.Backend.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("backend timeout must be positive, got %s", c.Backend.Timeout))
	}

	switch c.Export.Store {
	case ExportStoreMemory:
	case ExportStoreBadger:
		if c.Export.BadgerDir == "" {
			result = multierror.Append(result, errors.New("badger export store requires a directory"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown export store %q", c.Export.Store))
	}

	if c.Export.TTL <= 0 {
		result = multierror.Append(result, fmt.Errorf("export TTL must be positive, got %s", c.Export.TTL))
	}

	if c.Log.Format != logger.FormatJSON && c.Log.Format != logger.FormatText {
		result = multierror.Append(result, fmt.Errorf("invalid log format: %s", c.Log.Format))
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
