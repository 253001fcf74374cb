// Package config handles runtime configuration for the StockGuard server,
// layered as defaults, then an optional JSON file, then command-line flags,
// then environment variables.
package config

import "time"

// Config holds runtime settings for the StockGuard server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: SQLite DSN for the local session store.
//   - SecretKey: HMAC secret for signing the session record (HS256).
//     Do not use the test default outside development.
//   - SessionValidityDuration: lifetime of a persisted session record.
//   - AnalysisEndpoint: base URL of the external analysis service.
//   - AnalysisTimeout: per-request timeout for analysis calls.
//   - TickInterval: cadence of simulated live-market ticks.
//   - LogFile: when set, logs go to this rotated file instead of stdout.
type Config struct {
	EndpointAddr            string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	AnalysisEndpoint        string
	AnalysisTimeout         time.Duration
	TickInterval            time.Duration
	LogFile                 string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: The secret key is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = "stockguard.db"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 30 * 24 * time.Hour
	c.AnalysisEndpoint = "http://127.0.0.1:5000"
	c.AnalysisTimeout = 30 * time.Second
	c.TickInterval = 2 * time.Second
	c.LogFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags, and the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}
