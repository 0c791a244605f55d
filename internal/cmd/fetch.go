package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"skyscraper/internal/api"
	"skyscraper/internal/cmd/flags"
	"skyscraper/internal/config"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/posts"
	"skyscraper/internal/persistence/profiles"
	"skyscraper/internal/sync"
)

var fetchCmd = &cli.Command{
	Name:      "fetch",
	Usage:     "Fetch a user and mirror it locally",
	ArgsUsage: "<handle>",
	Flags: []cli.Flag{
		flags.Username,
		flags.Password,
		flags.Service,
		flags.Database,
		flags.Posts,
		flags.Follows,
		flags.Followers,
		flags.PageLimit,
		flags.MaxPages,
		flags.RetryAttempts,
		flags.RetryDelay,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		handle := c.Args().First()
		if handle == "" {
			return errors.New("a handle to fetch is required")
		}

		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			pal.Provide(&profiles.Repository{}),
			pal.Provide(&posts.Repository{}),
			pal.Provide(&api.Client{}),
			pal.Provide(&fetcher{
				handle: handle,
				opts: sync.ProfileOptions{
					Posts:     c.Bool("posts"),
					Follows:   c.Bool("follows"),
					Followers: c.Bool("followers"),
				},
			}),
		)
	},
}

type fetcher struct {
	Logger   *slog.Logger
	Config   *config.Config
	Client   *api.Client
	Profiles *profiles.Repository
	Posts    *posts.Repository

	handle string
	opts   sync.ProfileOptions
}

func (f *fetcher) Run(ctx context.Context) error {
	syncer := sync.New(f.Logger, f.Config, f.Client, f.Profiles, f.Posts)
	return syncer.SyncProfile(ctx, f.handle, f.opts)
}
