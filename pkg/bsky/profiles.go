package bsky

import (
	"context"
	"time"
)

const (
	getProfile = "/xrpc/app.bsky.actor.getProfile"
)

// https://docs.bsky.app/docs/api/app-bsky-actor-get-profile
type Profile struct {
	DID    string `json:"did"`
	Handle string `json:"handle"`

	DisplayName *string `json:"displayName"`
	Description *string `json:"description"`

	FollowsCount   int64 `json:"followsCount"`
	FollowersCount int64 `json:"followersCount"`
	PostsCount     int64 `json:"postsCount"`

	IndexedAt time.Time `json:"indexedAt"`
}

// GetProfile fetches the full profile view for a handle or DID.
func (c *Client) GetProfile(ctx context.Context, actor string) (*Profile, error) {
	res, err := c.r(ctx).
		SetQueryParam("actor", actor).
		SetResult(&Profile{}).
		Get(getProfile)
	if err := c.check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*Profile), nil
}
