package bsky

import (
	"context"
	"strconv"
)

const (
	listRepos    = "/xrpc/com.atproto.sync.listRepos"
	describeRepo = "/xrpc/com.atproto.repo.describeRepo"
)

// https://docs.bsky.app/docs/api/com-atproto-sync-list-repos
type RepoRef struct {
	DID    string `json:"did"`
	Head   string `json:"head"`
	Rev    string `json:"rev"`
	Active bool   `json:"active"`
}

type RepoPage struct {
	Repos  []RepoRef `json:"repos"`
	Cursor string    `json:"cursor"`
}

type RepoDescription struct {
	DID    string `json:"did"`
	Handle string `json:"handle"`
}

// ListRepos fetches one page of the global repository enumeration.
func (c *Client) ListRepos(ctx context.Context, cursor string, limit int) (*RepoPage, error) {
	req := c.r(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&RepoPage{})
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	res, err := req.Get(listRepos)
	if err := c.check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*RepoPage), nil
}

// DescribeRepo resolves a DID to its current handle.
func (c *Client) DescribeRepo(ctx context.Context, did string) (*RepoDescription, error) {
	res, err := c.r(ctx).
		SetQueryParam("repo", did).
		SetResult(&RepoDescription{}).
		Get(describeRepo)
	if err := c.check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*RepoDescription), nil
}
