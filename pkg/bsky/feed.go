package bsky

import (
	"context"
	"strconv"
	"time"
)

const (
	getAuthorFeed = "/xrpc/app.bsky.feed.getAuthorFeed"
)

// Author is the profile view embedded in feed items and graph listings.
// It carries just enough to register the account locally.
type Author struct {
	DID         string    `json:"did"`
	Handle      string    `json:"handle"`
	DisplayName *string   `json:"displayName"`
	IndexedAt   time.Time `json:"indexedAt"`
}

type PostRecord struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// https://docs.bsky.app/docs/api/app-bsky-feed-get-author-feed
type PostView struct {
	URI    string     `json:"uri"`
	CID    string     `json:"cid"`
	Author Author     `json:"author"`
	Record PostRecord `json:"record"`

	ReplyCount  int64 `json:"replyCount"`
	RepostCount int64 `json:"repostCount"`
	LikeCount   int64 `json:"likeCount"`

	IndexedAt time.Time `json:"indexedAt"`
}

type FeedItem struct {
	Post PostView `json:"post"`
}

type FeedPage struct {
	Feed   []FeedItem `json:"feed"`
	Cursor string     `json:"cursor"`
}

// GetAuthorFeed fetches one page of an author's feed. An empty cursor
// requests the first page; an empty cursor in the response means the feed
// is exhausted.
func (c *Client) GetAuthorFeed(ctx context.Context, actor, cursor string, limit int) (*FeedPage, error) {
	req := c.r(ctx).
		SetQueryParam("actor", actor).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&FeedPage{})
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	res, err := req.Get(getAuthorFeed)
	if err := c.check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*FeedPage), nil
}
