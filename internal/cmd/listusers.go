package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"skyscraper/internal/cmd/flags"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/profiles"
)

var listUsersCmd = &cli.Command{
	Name:  "list-users",
	Usage: "List locally mirrored users",
	Flags: []cli.Flag{
		flags.Database,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			pal.Provide(&profiles.Repository{}),
			pal.Provide(&lister{}),
		)
	},
}

type lister struct {
	Profiles *profiles.Repository
}

func (l *lister) Run(ctx context.Context) error {
	users, err := l.Profiles.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HANDLE\tDID\tPOSTS\tFOLLOWERS\tINDEXED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			u.Handle, u.DID, u.PostsCount, u.FollowersCount, u.IndexedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
