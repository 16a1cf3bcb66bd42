package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Amelia-Slapek/clea-client/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are strings in time.ParseDuration syntax. Pointer fields distinguish
// "absent" from "zero" so the file only overlays what it names.
type jsonConfig struct {
	BackendBaseURL *string `json:"backend_base_url"`
	RequestTimeout *string `json:"request_timeout"`
	DatabaseDSN    *string `json:"database_dsn"`
	QuietPeriod    *string `json:"quiet_period"`
	LogLevel       *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); when neither is given nothing is loaded.
// Read or unmarshal errors panic, as a broken config file is not
// something to silently run past.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != nil {
		cfg.BackendBaseURL = *jc.BackendBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = mustParseDuration(*jc.RequestTimeout)
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.QuietPeriod != nil {
		cfg.QuietPeriod = mustParseDuration(*jc.QuietPeriod)
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}

func mustParseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
