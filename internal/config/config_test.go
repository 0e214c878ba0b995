package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovdevs/weirdFlights/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	// No config.yaml in this package's directory, so discovery falls back
	// to defaults.
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 6, cfg.Scrape.MonthsAhead)
	assert.Equal(t, []string{"1 adult"}, cfg.Scrape.Mixes)
	assert.Equal(t, "earliest_date", cfg.Scrape.TieBreak)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
store:
  backend: file
  path: /tmp/flights.json
scrape:
  months_ahead: 3
  passenger_mixes: ["1 adult", "2 adults"]
  tie_break: scrape_order
  timeout: 5m
  retry_delays_ms: [50, 100]
sources:
  norse:
    enabled: true
    currency: GBP
    routes: [LGW-JFK, lgw-bkk]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Scrape.MonthsAhead)
	assert.Equal(t, "scrape_order", cfg.Scrape.TieBreak)
	assert.Equal(t, 5*time.Minute, cfg.Scrape.Timeout)
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}, cfg.Scrape.RetryDelays())

	norse, ok := cfg.Sources["norse"]
	require.True(t, ok)
	assert.True(t, norse.Enabled)

	routes, err := norse.ParseRoutes()
	require.NoError(t, err)
	assert.Equal(t, []models.Route{
		{Origin: "LGW", Destination: "JFK"},
		{Origin: "LGW", Destination: "BKK"},
	}, routes)
}

func TestParseRoutesRejectsBadPairs(t *testing.T) {
	for _, bad := range []string{"LGWJFK", "LGW-JFK-BKK", "LG-JFK", ""} {
		sc := SourceConfig{Routes: []string{bad}}
		_, err := sc.ParseRoutes()
		assert.Error(t, err, bad)
	}
}
