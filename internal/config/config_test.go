package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "stockguard.db", cfg.DatabaseDSN)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Empty(t, cfg.LogFile)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app", "-a", ":9090", "-d", "test.db", "-t", "60", "-i", "1"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "test.db", cfg.DatabaseDSN)
	assert.Equal(t, time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, time.Second, cfg.TickInterval)
}

func TestParseJSON(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	content := `{
		"endpoint_addr": ":7070",
		"secret_key": "json-secret",
		"session_validity_duration": "2h",
		"tick_interval": "5s"
	}`
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	os.Args = []string{"app", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 5*time.Second, cfg.TickInterval)
	// untouched fields keep their defaults
	assert.Equal(t, "stockguard.db", cfg.DatabaseDSN)
}

func TestParseJSON_NoFileFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("STOCKGUARD_ADDR", ":6060")
	t.Setenv("STOCKGUARD_SESSION_VALIDITY_MIN", "15")
	t.Setenv("STOCKGUARD_TICK_INTERVAL_SEC", "7")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, 15*time.Minute, cfg.SessionValidityDuration)
	assert.Equal(t, 7*time.Second, cfg.TickInterval)
}

func TestParseEnv_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("STOCKGUARD_SESSION_VALIDITY_MIN", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 30*24*time.Hour, cfg.SessionValidityDuration)
}
