package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"resty.dev/v3"

	"skyscraper/internal/config"
	"skyscraper/pkg/bsky"
)

var (
	ErrNoCredentials = errors.New("BLUESKY_USERNAME and BLUESKY_PASSWORD must be set")

	apiLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyscraper_api_request_latency_seconds",
			Help:    "Histogram of Bluesky API request latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "path", "status_code"},
	)
)

// Client is the authenticated remote collaborator of the sync engine. Init
// opens the session once; engine operations receive this client explicitly
// rather than reaching for ambient state.
type Client struct {
	Logger *slog.Logger
	Config *config.Config

	client *bsky.Client
}

func (c *Client) Init(ctx context.Context) error {
	c.Logger = c.Logger.With("component", "api.Client")

	if c.Config.Username == "" || c.Config.Password == "" {
		return ErrNoCredentials
	}

	c.client = bsky.NewClient(&bsky.ClientConfig{
		Service:             c.Config.Service,
		TransportSettings:   bsky.DefaultConfig.TransportSettings,
		ResponseMiddlewares: []resty.ResponseMiddleware{metricMiddleware},
	})

	session, err := c.client.CreateSession(ctx, c.Config.Username, c.Config.Password)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	c.Logger.Info("session created", "did", session.DID, "handle", session.Handle)
	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) GetProfile(ctx context.Context, actor string) (*bsky.Profile, error) {
	return c.client.GetProfile(ctx, actor)
}

func (c *Client) GetAuthorFeed(ctx context.Context, actor, cursor string, limit int) (*bsky.FeedPage, error) {
	return c.client.GetAuthorFeed(ctx, actor, cursor, limit)
}

func (c *Client) GetFollows(ctx context.Context, actor, cursor string, limit int) (*bsky.GraphPage, error) {
	return c.client.GetFollows(ctx, actor, cursor, limit)
}

func (c *Client) GetFollowers(ctx context.Context, actor, cursor string, limit int) (*bsky.GraphPage, error) {
	return c.client.GetFollowers(ctx, actor, cursor, limit)
}

func (c *Client) ListRepos(ctx context.Context, cursor string, limit int) (*bsky.RepoPage, error) {
	return c.client.ListRepos(ctx, cursor, limit)
}

func (c *Client) DescribeRepo(ctx context.Context, did string) (*bsky.RepoDescription, error) {
	return c.client.DescribeRepo(ctx, did)
}

func metricMiddleware(_ *resty.Client, response *resty.Response) error {
	reqURL, err := url.Parse(response.Request.URL)
	if err != nil {
		return err
	}

	apiLatency.WithLabelValues(
		response.Request.Method,
		reqURL.Path,
		fmt.Sprintf("%d", response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}
