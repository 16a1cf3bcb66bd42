// Package config assembles runtime settings for the Clea client CLI.
// Sources are layered: code defaults, then environment variables, then an
// optional JSON file (-c/-config), then command-line flags. Later sources
// win.
package config

import "time"

// Config holds runtime settings for the Clea client.
//
// Fields:
//   - BackendBaseURL: scheme://host[:port] of the Clea backend API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabaseDSN: path/DSN of the local SQLite cache database.
//   - QuietPeriod: debounce window for compatibility rechecks.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	BackendBaseURL string
	RequestTimeout time.Duration
	DatabaseDSN    string
	QuietPeriod    time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "https://clea-client-backend-bjdna9f5eug4a9fd.polandcentral-01.azurewebsites.net"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseDSN = "clea.db"
	c.QuietPeriod = 500 * time.Millisecond
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
