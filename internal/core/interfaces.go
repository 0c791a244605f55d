package core

import (
	"context"

	"skyscraper/pkg/bsky"
)

// Client is the remote side of the sync engine. Implemented by the
// authenticated XRPC client, faked in tests.
type Client interface {
	GetProfile(ctx context.Context, actor string) (*bsky.Profile, error)
	GetAuthorFeed(ctx context.Context, actor, cursor string, limit int) (*bsky.FeedPage, error)
	GetFollows(ctx context.Context, actor, cursor string, limit int) (*bsky.GraphPage, error)
	GetFollowers(ctx context.Context, actor, cursor string, limit int) (*bsky.GraphPage, error)
	ListRepos(ctx context.Context, cursor string, limit int) (*bsky.RepoPage, error)
	DescribeRepo(ctx context.Context, did string) (*bsky.RepoDescription, error)
}

// ProfileRepository is the local side for profiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, fields ProfileFields) (*ProfileModel, error)
	FindByDID(ctx context.Context, did string) (*ProfileModel, error)
	FindByHandle(ctx context.Context, handle string) (*ProfileModel, error)
	ExistsByDID(ctx context.Context, dids ...string) (map[string]bool, error)
	List(ctx context.Context) ([]ProfileModel, error)
}

// PostRepository is the local side for posts.
type PostRepository interface {
	Upsert(ctx context.Context, fields PostFields) (*PostModel, error)
	Search(ctx context.Context, authorDID, query string) ([]PostModel, error)
}

// CursorRepository persists stream resume points.
type CursorRepository interface {
	Get(ctx context.Context, service string) (int64, error)
	Put(ctx context.Context, service string, cursor int64) error
}
