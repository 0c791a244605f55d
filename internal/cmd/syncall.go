package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"skyscraper/internal/api"
	"skyscraper/internal/cmd/flags"
	"skyscraper/internal/config"
	"skyscraper/internal/metrics"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/posts"
	"skyscraper/internal/persistence/profiles"
	"skyscraper/internal/sync"
)

var syncAllCmd = &cli.Command{
	Name:  "sync-all",
	Usage: "Enumerate every known repository and mirror the missing profiles",
	Flags: []cli.Flag{
		flags.Username,
		flags.Password,
		flags.Service,
		flags.Database,
		flags.PageLimit,
		flags.MaxPages,
		flags.RetryAttempts,
		flags.RetryDelay,
		flags.MetricsAddr,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			pal.Provide(&profiles.Repository{}),
			pal.Provide(&posts.Repository{}),
			pal.Provide(&api.Client{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&metrics.Collector{}),
			pal.Provide(&allSyncer{}),
		)
	},
}

type allSyncer struct {
	Logger   *slog.Logger
	Config   *config.Config
	Client   *api.Client
	Profiles *profiles.Repository
	Posts    *posts.Repository
}

func (a *allSyncer) Run(ctx context.Context) error {
	syncer := sync.New(a.Logger, a.Config, a.Client, a.Profiles, a.Posts)

	summary, err := syncer.SyncAllRepos(ctx)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		a.Logger.Warn("some repos were skipped, re-run to retry them", "failed", summary.Failed)
	}
	return nil
}
