package config

import (
	"flag"
	"os"
	"time"

	"stockguard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   SQLite DSN for the session store
//	-s string   HMAC secret for the session record
//	-t int      session validity, minutes
//	-e string   analysis service base URL
//	-i int      live tick interval, seconds
//	-l string   log file path (empty for stdout)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-e", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity duration (in minutes)")

	fs.StringVar(&config.AnalysisEndpoint, "e", config.AnalysisEndpoint, "analysis service base URL")
	tickInterval := fs.Int("i", int(config.TickInterval.Seconds()), "live tick interval (in seconds)")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.TickInterval = time.Duration(*tickInterval) * time.Second
}
