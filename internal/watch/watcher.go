// Package watch keeps already-mirrored profiles fresh by following the
// jetstream firehose and folding matching post commits into the store.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aarondl/opt/omit"
	jsclient "github.com/bluesky-social/jetstream/pkg/client"
	"github.com/bluesky-social/jetstream/pkg/client/schedulers/sequential"
	"github.com/bluesky-social/jetstream/pkg/models"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"skyscraper/internal/config"
	"skyscraper/internal/core"
	"skyscraper/internal/persistence/cursors"
	"skyscraper/internal/persistence/posts"
	"skyscraper/internal/persistence/profiles"
	"skyscraper/pkg/bsky"
	"skyscraper/pkg/retry"
)

const (
	defaultJetstreamURL = "wss://jetstream2.us-east.bsky.network/subscribe"
	postCollection      = "app.bsky.feed.post"
	cursorService       = "jetstream"
)

type Watcher struct {
	Logger   *slog.Logger
	Config   *config.Config
	Profiles *profiles.Repository
	Posts    *posts.Repository
	Cursors  *cursors.Repository

	ch     chan pips.D[*models.Event]
	client *jsclient.Client
}

func (w *Watcher) Init(_ context.Context) error {
	w.Logger = w.Logger.With("component", "watch.Watcher")
	w.ch = make(chan pips.D[*models.Event])

	wsURL := w.Config.JetstreamURL
	if wsURL == "" {
		wsURL = defaultJetstreamURL
	}

	handler := sequential.NewScheduler("skyscraper", w.Logger, w.enqueue)

	var err error
	w.client, err = jsclient.NewClient(
		&jsclient.ClientConfig{
			Compress:          true,
			WebsocketURL:      wsURL,
			WantedCollections: []string{postCollection},
			ExtraHeaders:      map[string]string{},
		}, w.Logger, handler,
	)
	return err
}

// enqueue hands one stream event to the consumer. The select keeps the
// scheduler from blocking forever once the consumer is gone: its ctx is the
// read loop's, which Run cancels when the pipeline stops.
func (w *Watcher) enqueue(ctx context.Context, event *models.Event) error {
	select {
	case w.ch <- pips.NewD(event):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run follows the stream until ctx is canceled or either side fails. The
// connection and the consumer share a derived context, so a failure on one
// side promptly tears down the other instead of wedging on the channel.
func (w *Watcher) Run(ctx context.Context) error {
	cursor, err := w.Cursors.Get(ctx, cursorService)
	if err != nil {
		return err
	}

	w.Logger.Info("following the firehose", "cursor", cursor)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The connection drops every now and then; the cursor pointer survives
	// reconnects so no events are skipped.
	connectCh := make(chan error, 1)
	go func() {
		connectCh <- retry.Do(ctx, retry.Policy{Attempts: 10, Delay: time.Second}, func() error {
			return w.client.ConnectAndRead(ctx, &cursor)
		})
	}()

	consumeCh := make(chan error, 1)
	go func() {
		consumeCh <- w.consume(ctx)
	}()

	select {
	case err = <-consumeCh:
		cancel()
		if cErr := <-connectCh; err == nil {
			err = cErr
		}
	case err = <-connectCh:
		cancel()
		if cErr := <-consumeCh; err == nil {
			err = cErr
		}
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *Watcher) consume(ctx context.Context) error {
	return pips.New[*models.Event, any]().
		Then(apply.Filter(w.wanted)).
		Then(apply.Map(w.process)).
		Run(ctx, w.ch).
		Wait(ctx)
}

// wanted keeps post creates and updates authored by locally mirrored
// profiles; everything else on the stream is noise to this mirror.
func (w *Watcher) wanted(ctx context.Context, event *models.Event) (bool, error) {
	if event.Kind != models.EventKindCommit || event.Commit == nil {
		return false, nil
	}
	if event.Commit.Collection != postCollection {
		return false, nil
	}
	if event.Commit.Operation != models.CommitOperationCreate && event.Commit.Operation != models.CommitOperationUpdate {
		return false, nil
	}

	known, err := w.Profiles.ExistsByDID(ctx, event.Did)
	if err != nil {
		return false, err
	}
	return known[event.Did], nil
}

func (w *Watcher) process(ctx context.Context, event *models.Event) (any, error) {
	var record bsky.PostRecord
	if err := json.Unmarshal(event.Commit.Record, &record); err != nil {
		w.Logger.Warn("skipping malformed post record",
			"did", event.Did, "rkey", event.Commit.RKey, "error", err)
		return nil, nil
	}

	profile, err := w.Profiles.FindByDID(ctx, event.Did)
	if err != nil {
		return nil, err
	}

	uri := bsky.PostURI(event.Did, event.Commit.RKey)
	_, err = w.Posts.Upsert(ctx, core.PostFields{
		URI:       uri,
		CID:       omit.From(event.Commit.CID),
		URL:       omit.From(bsky.PostURL(profile.Handle, uri)),
		ProfileID: omit.From(profile.ID),
		AuthorDID: omit.From(event.Did),
		Text:      omit.From(record.Text),
		CreatedAt: omit.From(record.CreatedAt),
		IndexedAt: omit.From(time.UnixMicro(event.TimeUS).UTC()),
	})
	if err != nil {
		return nil, err
	}

	w.Logger.Debug("recorded post", "uri", uri)

	return nil, w.Cursors.Put(ctx, cursorService, event.TimeUS)
}
