package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"skyscraper/internal/cmd/flags"
	"skyscraper/internal/metrics"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/cursors"
	"skyscraper/internal/persistence/posts"
	"skyscraper/internal/persistence/profiles"
	"skyscraper/internal/watch"
)

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Follow the firehose and keep mirrored profiles' posts fresh",
	Flags: []cli.Flag{
		flags.Database,
		flags.JetstreamURL,
		flags.MetricsAddr,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			pal.Provide(&profiles.Repository{}),
			pal.Provide(&posts.Repository{}),
			pal.Provide(&cursors.Repository{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&metrics.Collector{}),
			pal.Provide(&watch.Watcher{}),
		)
	},
}
