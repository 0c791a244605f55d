package bsky

import (
	"context"
	"encoding/json"
	"strconv"
)

const (
	getFollows   = "/xrpc/app.bsky.graph.getFollows"
	getFollowers = "/xrpc/app.bsky.graph.getFollowers"
)

// GraphPage is one page of a follows or followers listing.
type GraphPage struct {
	Subject  Author   `json:"subject"`
	Profiles []Author `json:"-"`
	Cursor   string   `json:"cursor"`
}

// The two graph endpoints name their item list differently; fold both
// spellings into Profiles.
func (p *GraphPage) UnmarshalJSON(data []byte) error {
	type alias struct {
		Subject   Author   `json:"subject"`
		Follows   []Author `json:"follows"`
		Followers []Author `json:"followers"`
		Cursor    string   `json:"cursor"`
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	p.Subject = a.Subject
	p.Cursor = a.Cursor
	p.Profiles = a.Follows
	if p.Profiles == nil {
		p.Profiles = a.Followers
	}
	return nil
}

// GetFollows fetches one page of the accounts actor follows.
func (c *Client) GetFollows(ctx context.Context, actor, cursor string, limit int) (*GraphPage, error) {
	return c.graphPage(ctx, getFollows, actor, cursor, limit)
}

// GetFollowers fetches one page of the accounts following actor.
func (c *Client) GetFollowers(ctx context.Context, actor, cursor string, limit int) (*GraphPage, error) {
	return c.graphPage(ctx, getFollowers, actor, cursor, limit)
}

func (c *Client) graphPage(ctx context.Context, path, actor, cursor string, limit int) (*GraphPage, error) {
	req := c.r(ctx).
		SetQueryParam("actor", actor).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&GraphPage{})
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	res, err := req.Get(path)
	if err := c.check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*GraphPage), nil
}
