package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, ExportStoreMemory, cfg.Export.Store)
	assert.Equal(t, 15*time.Minute, cfg.Export.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("BACKEND_URL", "https://rates.example.com")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("EXPORT_STORE", "badger")
	t.Setenv("EXPORT_BADGER_DIR", "/tmp/exports")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "https://rates.example.com", cfg.Backend.URL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, ExportStoreBadger, cfg.Export.Store)
	assert.Equal(t, "/tmp/exports", cfg.Export.BadgerDir)
	assert.NoError(t, cfg.Validate())
}

func TestNewInvalidDuration(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "soon")

	_, err := New()
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := &Config{
		Server:  Server{ListenAddr: ""},
		Backend: Backend{URL: "ftp://rates", Timeout: 0},
		Export:  Export{Store: "redis", TTL: time.Minute},
		Log:     Log{Format: "xml", Level: "loud"},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 6)
	assert.Contains(t, err.Error(), "listen address")
	assert.Contains(t, err.Error(), "http or https")
	assert.Contains(t, err.Error(), "unknown export store")
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidateBadgerNeedsDirectory(t *testing.T) {
	cfg := &Config{
		Server:  Server{ListenAddr: ":8080"},
		Backend: Backend{URL: "http://localhost:5000", Timeout: time.Second},
		Export:  Export{Store: ExportStoreBadger, TTL: time.Minute},
		Log:     Log{Format: "json", Level: "info"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a directory")
}
