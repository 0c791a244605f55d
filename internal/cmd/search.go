package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"skyscraper/internal/cmd/flags"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/posts"
	"skyscraper/internal/persistence/profiles"
)

var searchUsername = &cli.StringFlag{
	Name:    "username",
	Aliases: []string{"u"},
	Usage:   "Only search posts by this user",
}

var searchCmd = &cli.Command{
	Name:      "search",
	Usage:     "Search locally mirrored posts",
	ArgsUsage: "<query>",
	Flags: []cli.Flag{
		flags.Database,
		searchUsername,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		query := c.Args().First()
		if query == "" {
			return errors.New("a search query is required")
		}

		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			pal.Provide(&profiles.Repository{}),
			pal.Provide(&posts.Repository{}),
			pal.Provide(&searcher{
				query:  query,
				handle: c.String("username"),
			}),
		)
	},
}

type searcher struct {
	Profiles *profiles.Repository
	Posts    *posts.Repository

	query  string
	handle string
}

func (s *searcher) Run(ctx context.Context) error {
	authorDID := ""
	if s.handle != "" {
		profile, err := s.Profiles.FindByHandle(ctx, s.handle)
		if err != nil {
			return err
		}
		authorDID = profile.DID
	}

	found, err := s.Posts.Search(ctx, authorDID, s.query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tAUTHOR\tTEXT\tURL")
	for _, p := range found {
		fmt.Fprintf(w, "%s\t%s\t%.60s\t%s\n",
			p.CreatedAt.Format("2006-01-02"), p.AuthorDID, p.Text, p.URL)
	}
	return w.Flush()
}
