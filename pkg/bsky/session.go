package bsky

import (
	"context"
)

const (
	createSession = "/xrpc/com.atproto.server.createSession"
)

type Session struct {
	DID       string `json:"did"`
	Handle    string `json:"handle"`
	AccessJwt string `json:"accessJwt"`
}

// CreateSession authenticates against the PDS with an app password and
// arms the client with the returned access token. Call once before any
// authenticated endpoint.
func (c *Client) CreateSession(ctx context.Context, identifier, password string) (*Session, error) {
	res, err := c.r(ctx).
		SetBody(map[string]string{
			"identifier": identifier,
			"password":   password,
		}).
		SetResult(&Session{}).
		Post(createSession)
	if err := c.check(res, err); err != nil {
		return nil, err
	}

	session := res.Result().(*Session)
	c.client.SetAuthToken(session.AccessJwt)

	return session, nil
}
