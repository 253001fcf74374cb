package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it, which is godotenv's default behavior.
//
// Recognized variables: STOCKGUARD_ADDR, STOCKGUARD_DATABASE_DSN,
// STOCKGUARD_SECRET_KEY, STOCKGUARD_SESSION_VALIDITY_MIN,
// STOCKGUARD_ANALYSIS_ENDPOINT, STOCKGUARD_TICK_INTERVAL_SEC,
// STOCKGUARD_LOG_FILE.
func parseEnv(config *Config) {
	_ = godotenv.Load(".env")

	if v := os.Getenv("STOCKGUARD_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("STOCKGUARD_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("STOCKGUARD_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("STOCKGUARD_SESSION_VALIDITY_MIN"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			config.SessionValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("STOCKGUARD_ANALYSIS_ENDPOINT"); v != "" {
		config.AnalysisEndpoint = v
	}
	if v := os.Getenv("STOCKGUARD_TICK_INTERVAL_SEC"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			config.TickInterval = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("STOCKGUARD_LOG_FILE"); v != "" {
		config.LogFile = v
	}
}
