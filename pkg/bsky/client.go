// Package bsky is a small XRPC client for the handful of Bluesky endpoints
// the mirror consumes. It owns no storage and keeps no state beyond the
// session token; callers pass a context into every call.
package bsky

import (
	"context"

	"resty.dev/v3"
)

const (
	// DefaultService is the PDS used when no other service is configured.
	DefaultService = "https://bsky.social"
)

type Client struct {
	client *resty.Client
}

func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultConfig
	}

	service := cfg.Service
	if service == "" {
		service = DefaultService
	}

	settings := cfg.TransportSettings
	if settings == nil {
		settings = DefaultConfig.TransportSettings
	}

	client := resty.NewWithTransportSettings(settings).
		SetBaseURL(service)

	for _, m := range cfg.RequestMiddlewares {
		client.AddRequestMiddleware(m)
	}
	for _, m := range cfg.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &Client{
		client: client,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().
		WithContext(ctx).
		SetError(&Error{})
}

// check folds a transport error and a non-2xx response into a single error
// value. XRPC error bodies unmarshal into *Error via SetError above.
func (c *Client) check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}

	apiErr, ok := res.Error().(*Error)
	if !ok || apiErr == nil {
		apiErr = &Error{}
	}
	apiErr.StatusCode = res.StatusCode()
	return apiErr
}
