package config

import (
	"strconv"
	"time"
)

type ExportConfig interface {
	GetExportPollInterval() time.Duration
	GetExportMaxAttempts() int
	GetAuthStateTTL() time.Duration
}

type Export struct{}

var _ ExportConfig = Export{}

// GetExportPollInterval is the pause between export job status checks.
func (Export) GetExportPollInterval() time.Duration {
	return getDuration("EXPORT_POLL_INTERVAL", 1*time.Second)
}

// GetExportMaxAttempts bounds the polling loop. Combined with the poll
// interval this caps worst-case import latency at about a minute.
func (Export) GetExportMaxAttempts() int {
	if v, err := strconv.Atoi(GetEnv("EXPORT_MAX_ATTEMPTS", "")); err == nil && v > 0 {
		return v
	}
	return 60
}

// GetAuthStateTTL is how long a pending authorization (state -> verifier)
// survives before the cleanup ticker evicts it. Abandoned login attempts
// would otherwise accumulate for the process lifetime.
func (Export) GetAuthStateTTL() time.Duration {
	return getDuration("AUTH_STATE_TTL", 15*time.Minute)
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(GetEnv(envVar, "")); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
