package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// envConfig is a DTO for go-envconfig. Pointer fields stay nil when the
// variable is unset, so only explicitly provided values overlay the
// defaults.
type envConfig struct {
	BackendBaseURL *string `env:"CLEA_BACKEND_URL"`
	RequestTimeout *string `env:"CLEA_REQUEST_TIMEOUT"`
	DatabaseDSN    *string `env:"CLEA_DB"`
	QuietPeriod    *string `env:"CLEA_QUIET_PERIOD"`
	LogLevel       *string `env:"CLEA_LOG_LEVEL"`
}

// parseEnv overlays Config with values from CLEA_* environment variables.
// Durations use time.ParseDuration syntax ("15s", "500ms"); a malformed
// duration panics, matching the JSON layer's behavior.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(err)
	}

	if ec.BackendBaseURL != nil {
		cfg.BackendBaseURL = *ec.BackendBaseURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = mustParseDuration(*ec.RequestTimeout)
	}
	if ec.DatabaseDSN != nil {
		cfg.DatabaseDSN = *ec.DatabaseDSN
	}
	if ec.QuietPeriod != nil {
		cfg.QuietPeriod = mustParseDuration(*ec.QuietPeriod)
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
}
