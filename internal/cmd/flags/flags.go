package flags

import (
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"skyscraper/internal/persistence"
	"skyscraper/pkg/bsky"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var Service = &cli.StringFlag{
	Name:    "service",
	Usage:   "The PDS to talk to",
	Value:   bsky.DefaultService,
	Sources: cli.EnvVars("BLUESKY_SERVICE"),
}

var Username = &cli.StringFlag{
	Name:    "username",
	Usage:   "The account to authenticate as",
	Sources: cli.EnvVars("BLUESKY_USERNAME"),
}

var Password = &cli.StringFlag{
	Name:    "password",
	Usage:   "The app password to authenticate with",
	Sources: cli.EnvVars("BLUESKY_PASSWORD"),
}

var Database = &cli.StringFlag{
	Name:    "db",
	Usage:   "A sqlite file path or a postgres:// DSN",
	Value:   persistence.DefaultDatabase,
	Sources: cli.EnvVars("DATABASE_URL"),
}

var PageLimit = &cli.IntFlag{
	Name:    "page-limit",
	Usage:   "Items requested per page",
	Value:   100,
	Sources: cli.EnvVars("PAGE_LIMIT"),
}

var MaxPages = &cli.IntFlag{
	Name:    "max-pages",
	Usage:   "Page budget per listing walk",
	Value:   1000,
	Sources: cli.EnvVars("MAX_PAGES"),
}

var RetryAttempts = &cli.IntFlag{
	Name:  "retry-attempts",
	Usage: "Attempts per remote call before giving up",
	Value: 3,
}

var RetryDelay = &cli.DurationFlag{
	Name:  "retry-delay",
	Usage: "Pause between retry attempts",
	Value: 5 * time.Second,
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Serve prometheus metrics on this address while running",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var JetstreamURL = &cli.StringFlag{
	Name:    "jetstream-url",
	Usage:   "The jetstream endpoint the watch command follows",
	Sources: cli.EnvVars("JETSTREAM_URL"),
}

var Posts = &cli.BoolFlag{
	Name:  "posts",
	Usage: "Also mirror the profile's posts",
	Value: true,
}

var Follows = &cli.BoolFlag{
	Name:  "follows",
	Usage: "Also register the profiles the account follows",
	Value: false,
}

var Followers = &cli.BoolFlag{
	Name:  "followers",
	Usage: "Also register the profiles following the account",
	Value: false,
}
