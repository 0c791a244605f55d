package config

import "time"

// Config carries everything the commands need, populated from CLI flags
// (and their env sources) via pkg/clicfg.
type Config struct {
	Service     string `flag:"service"`
	Username    string `flag:"username"`
	Password    string `flag:"password"`
	DatabaseURL string `flag:"db"`
	LogLevel    string `flag:"log-level"`

	PageLimit     int           `flag:"page-limit"`
	MaxPages      int           `flag:"max-pages"`
	RetryAttempts int           `flag:"retry-attempts"`
	RetryDelay    time.Duration `flag:"retry-delay"`

	MetricsAddr  string `flag:"metrics-addr"`
	JetstreamURL string `flag:"jetstream-url"`
}
