// Package sync implements the incremental mirror: cursor-driven pagination
// over the remote listings, retried fetches, and dependency-ordered upserts
// into the local store.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/samber/lo"

	"skyscraper/internal/config"
	"skyscraper/internal/core"
	"skyscraper/pkg/bsky"
	"skyscraper/pkg/pager"
	"skyscraper/pkg/retry"
)

const defaultPageLimit = 100

type Syncer struct {
	logger   *slog.Logger
	cfg      *config.Config
	client   core.Client
	profiles core.ProfileRepository
	posts    core.PostRepository
}

func New(logger *slog.Logger, cfg *config.Config, client core.Client, profileRepo core.ProfileRepository, postRepo core.PostRepository) *Syncer {
	return &Syncer{
		logger:   logger.With("component", "sync.Syncer"),
		cfg:      cfg,
		client:   client,
		profiles: profileRepo,
		posts:    postRepo,
	}
}

// ProfileOptions selects which parts of a profile to mirror besides the
// profile row itself.
type ProfileOptions struct {
	Posts     bool
	Follows   bool
	Followers bool
}

// SyncProfile mirrors one profile: the profile row, then optionally its
// follows, followers and post feed. Any failure aborts the whole workflow;
// already-committed upserts stay, so a re-run resumes safely.
func (s *Syncer) SyncProfile(ctx context.Context, handle string, opts ProfileOptions) error {
	var profile *bsky.Profile
	err := retry.Do(ctx, s.policy(), func() error {
		var err error
		profile, err = s.client.GetProfile(ctx, handle)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetch profile %q: %w", handle, err)
	}

	stored, err := s.profiles.Upsert(ctx, profileFields(profile))
	if err != nil {
		return fmt.Errorf("store profile %q: %w", handle, err)
	}
	profilesSynced.Inc()
	s.logger.Info("synced profile", "did", stored.DID, "handle", stored.Handle)

	if opts.Follows {
		if err := s.syncGraph(ctx, profile.Handle, "follows", s.client.GetFollows); err != nil {
			return fmt.Errorf("sync follows of %q: %w", handle, err)
		}
	}
	if opts.Followers {
		if err := s.syncGraph(ctx, profile.Handle, "followers", s.client.GetFollowers); err != nil {
			return fmt.Errorf("sync followers of %q: %w", handle, err)
		}
	}
	if opts.Posts {
		if err := s.syncFeed(ctx, profile.Handle); err != nil {
			return fmt.Errorf("sync feed of %q: %w", handle, err)
		}
	}

	return nil
}

type graphFetch func(ctx context.Context, actor, cursor string, limit int) (*bsky.GraphPage, error)

// syncGraph walks one of the graph listings, registering every entry as a
// minimal profile.
func (s *Syncer) syncGraph(ctx context.Context, handle, kind string, fetch graphFetch) error {
	pageFn := func(ctx context.Context, cursor string) (pager.Page[bsky.Author], error) {
		var page *bsky.GraphPage
		err := retry.Do(ctx, s.policy(), func() error {
			var err error
			page, err = fetch(ctx, handle, cursor, s.pageLimit())
			return err
		})
		if err != nil {
			return pager.Page[bsky.Author]{}, err
		}
		return pager.Page[bsky.Author]{Items: page.Profiles, Cursor: page.Cursor}, nil
	}

	count := 0
	err := pager.Each(ctx, s.pagerConfig(), pageFn, func(ctx context.Context, items []bsky.Author) error {
		for _, author := range items {
			if author.DID == "" {
				return fmt.Errorf("%s entry of %q has no did", kind, handle)
			}
			if _, err := s.profiles.Upsert(ctx, authorFields(author)); err != nil {
				return fmt.Errorf("store %s entry %s: %w", kind, author.DID, err)
			}
			profilesSynced.Inc()
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("synced graph", "kind", kind, "handle", handle, "count", count)
	return nil
}

// syncFeed streams the author feed page by page. Feeds can be unbounded, so
// posts are resolved as pages arrive instead of being collected first.
func (s *Syncer) syncFeed(ctx context.Context, handle string) error {
	pageFn := func(ctx context.Context, cursor string) (pager.Page[bsky.FeedItem], error) {
		var page *bsky.FeedPage
		err := retry.Do(ctx, s.policy(), func() error {
			var err error
			page, err = s.client.GetAuthorFeed(ctx, handle, cursor, s.pageLimit())
			return err
		})
		if err != nil {
			return pager.Page[bsky.FeedItem]{}, err
		}
		return pager.Page[bsky.FeedItem]{Items: page.Feed, Cursor: page.Cursor}, nil
	}

	count := 0
	err := pager.Each(ctx, s.pagerConfig(), pageFn, func(ctx context.Context, items []bsky.FeedItem) error {
		for _, item := range items {
			if _, err := s.upsertFeedPost(ctx, item.Post); err != nil {
				return fmt.Errorf("post %s: %w", item.Post.URI, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("synced feed", "handle", handle, "count", count)
	return nil
}

// upsertFeedPost resolves the post's author before the post itself: the
// post row references the profile row, so the profile must exist first.
// The author payload is minimal; a later direct profile sync fills in the
// rest without touching what this pass wrote.
func (s *Syncer) upsertFeedPost(ctx context.Context, post bsky.PostView) (*core.PostModel, error) {
	author := post.Author
	if author.DID == "" {
		return nil, fmt.Errorf("%w: post author did", core.ErrMissingKey)
	}

	indexedAt := author.IndexedAt
	if indexedAt.IsZero() {
		indexedAt = post.IndexedAt
	}

	profile, err := s.profiles.Upsert(ctx, core.ProfileFields{
		DID:         author.DID,
		Handle:      omit.From(author.Handle),
		DisplayName: omitnull.FromPtr(author.DisplayName),
		IndexedAt:   omit.From(indexedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("store author: %w", err)
	}

	url := bsky.PostURL(author.Handle, post.URI)
	if post.URI == "" {
		s.logger.Warn("post has a malformed uri", "uri", post.URI, "author", author.DID)
	}

	stored, err := s.posts.Upsert(ctx, core.PostFields{
		URI:         post.URI,
		CID:         omit.From(post.CID),
		URL:         omit.From(url),
		ProfileID:   omit.From(profile.ID),
		AuthorDID:   omit.From(author.DID),
		Text:        omit.From(post.Record.Text),
		CreatedAt:   omit.From(post.Record.CreatedAt),
		ReplyCount:  omit.From(post.ReplyCount),
		RepostCount: omit.From(post.RepostCount),
		LikeCount:   omit.From(post.LikeCount),
		IndexedAt:   omit.From(post.IndexedAt),
	})
	if err != nil {
		return nil, err
	}
	postsSynced.Inc()
	return stored, nil
}

// Summary is the outcome of one full enumeration pass.
type Summary struct {
	Discovered int
	Synced     int
	Skipped    int
	Failed     int
}

// SyncAllRepos enumerates every known repository and mirrors the profiles
// not stored locally yet. Per-repo failures are logged and skipped; only
// the enumeration itself is workflow-fatal.
func (s *Syncer) SyncAllRepos(ctx context.Context) (Summary, error) {
	var summary Summary

	pageFn := func(ctx context.Context, cursor string) (pager.Page[bsky.RepoRef], error) {
		var page *bsky.RepoPage
		err := retry.Do(ctx, s.policy(), func() error {
			var err error
			page, err = s.client.ListRepos(ctx, cursor, s.pageLimit())
			return err
		})
		if err != nil {
			return pager.Page[bsky.RepoRef]{}, err
		}
		return pager.Page[bsky.RepoRef]{Items: page.Repos, Cursor: page.Cursor}, nil
	}

	repos, err := pager.CollectUnique(ctx, s.pagerConfig(), pageFn, func(r bsky.RepoRef) string {
		return r.DID
	})
	if err != nil {
		return summary, fmt.Errorf("enumerate repos: %w", err)
	}
	summary.Discovered = len(repos)

	dids := lo.FilterMap(repos, func(r bsky.RepoRef, _ int) (string, bool) {
		return r.DID, r.DID != ""
	})
	if dropped := len(repos) - len(dids); dropped > 0 {
		s.logger.Warn("dropping repo entries without a did", "stage", "enumerate", "count", dropped)
		summary.Failed += dropped
	}

	existing, err := s.profiles.ExistsByDID(ctx, dids...)
	if err != nil {
		return summary, fmt.Errorf("check known dids: %w", err)
	}

	for _, did := range dids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if existing[did] {
			summary.Skipped++
			continue
		}
		if err := s.syncRepo(ctx, did); err != nil {
			s.logger.Warn("skipping repo", "did", did, "error", err)
			reposFailed.Inc()
			summary.Failed++
			continue
		}
		summary.Synced++
	}

	s.logger.Info("sync pass finished",
		"discovered", summary.Discovered,
		"synced", summary.Synced,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// syncRepo mirrors one freshly discovered repository. Errors name the stage
// so a skipped DID can be retried by hand.
func (s *Syncer) syncRepo(ctx context.Context, did string) error {
	var desc *bsky.RepoDescription
	err := retry.Do(ctx, s.policy(), func() error {
		var err error
		desc, err = s.client.DescribeRepo(ctx, did)
		return err
	})
	if err != nil {
		return fmt.Errorf("describe repo: %w", err)
	}
	if desc.Handle == "" {
		return errors.New("repo description has no handle")
	}

	var profile *bsky.Profile
	err = retry.Do(ctx, s.policy(), func() error {
		var err error
		profile, err = s.client.GetProfile(ctx, desc.Handle)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetch profile %q: %w", desc.Handle, err)
	}

	if _, err := s.profiles.Upsert(ctx, profileFields(profile)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	profilesSynced.Inc()
	return nil
}

func (s *Syncer) policy() retry.Policy {
	p := retry.Default
	if s.cfg.RetryAttempts > 0 {
		p.Attempts = s.cfg.RetryAttempts
	}
	if s.cfg.RetryDelay > 0 {
		p.Delay = s.cfg.RetryDelay
	}
	p.Retryable = bsky.IsTransient
	return p
}

func (s *Syncer) pagerConfig() pager.Config {
	return pager.Config{MaxPages: s.cfg.MaxPages}
}

func (s *Syncer) pageLimit() int {
	if s.cfg.PageLimit > 0 {
		return s.cfg.PageLimit
	}
	return defaultPageLimit
}

func profileFields(p *bsky.Profile) core.ProfileFields {
	return core.ProfileFields{
		DID:            p.DID,
		Handle:         omit.From(p.Handle),
		DisplayName:    omitnull.FromPtr(p.DisplayName),
		Description:    omitnull.FromPtr(p.Description),
		FollowsCount:   omit.From(p.FollowsCount),
		FollowersCount: omit.From(p.FollowersCount),
		PostsCount:     omit.From(p.PostsCount),
		IndexedAt:      omit.From(p.IndexedAt),
	}
}

func authorFields(a bsky.Author) core.ProfileFields {
	f := core.ProfileFields{
		DID:         a.DID,
		Handle:      omit.From(a.Handle),
		DisplayName: omitnull.FromPtr(a.DisplayName),
	}
	if !a.IndexedAt.IsZero() {
		f.IndexedAt = omit.From(a.IndexedAt)
	}
	return f
}
