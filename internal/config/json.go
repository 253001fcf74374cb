package config

import (
	"encoding/json"
	"os"
	"time"

	"stockguard/internal/flagx"
	"stockguard/internal/timex"
)

// jsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "30s" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type jsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	AnalysisEndpoint        string         `json:"analysis_endpoint"`
	AnalysisTimeout         timex.Duration `json:"analysis_timeout"`
	TickInterval            timex.Duration `json:"tick_interval"`
	LogFile                 string         `json:"log_file"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags;
// when neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &jsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	}
	if c.AnalysisEndpoint != "" {
		config.AnalysisEndpoint = c.AnalysisEndpoint
	}
	if c.AnalysisTimeout.Duration != 0 {
		config.AnalysisTimeout = time.Duration(c.AnalysisTimeout.Duration)
	}
	if c.TickInterval.Duration != 0 {
		config.TickInterval = time.Duration(c.TickInterval.Duration)
	}
	if c.LogFile != "" {
		config.LogFile = c.LogFile
	}
}
