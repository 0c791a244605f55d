// Package pager walks cursor-paginated listings. A page fetch returns the
// items plus the cursor of the next page; an empty cursor means the listing
// is exhausted.
package pager

import (
	"context"
	"errors"
)

// DefaultMaxPages bounds a walk when the config leaves it unset. Remote
// feeds are not guaranteed to be finite, so every walk carries a budget.
const DefaultMaxPages = 1000

// ErrTooManyPages is returned when a walk hits its page budget before the
// remote reports exhaustion.
var ErrTooManyPages = errors.New("pagination exceeded the page budget")

type Page[T any] struct {
	Items  []T
	Cursor string
}

type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

type Config struct {
	MaxPages int
}

// Each walks the listing page by page, handing every non-empty page to fn
// as it arrives. Feeds can be large, so nothing is materialized beyond the
// current page. The walk stops on the first fetch or fn error, on an empty
// cursor, or on a cursor identical to the previous one (a remote echoing
// its own cursor would otherwise loop forever).
func Each[T any](ctx context.Context, cfg Config, fetch FetchFunc[T], fn func(ctx context.Context, items []T) error) error {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	cursor := ""
	for range maxPages {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return err
		}

		if len(page.Items) > 0 {
			if err := fn(ctx, page.Items); err != nil {
				return err
			}
		}

		if page.Cursor == "" || page.Cursor == cursor {
			return nil
		}
		cursor = page.Cursor
	}

	return ErrTooManyPages
}

// CollectUnique walks the listing and accumulates items, dropping any whose
// key was already seen. First-seen wins, so the result preserves the order
// pages arrived in.
func CollectUnique[T any](ctx context.Context, cfg Config, fetch FetchFunc[T], key func(T) string) ([]T, error) {
	seen := map[string]struct{}{}
	var out []T

	err := Each(ctx, cfg, fetch, func(_ context.Context, items []T) error {
		for _, item := range items {
			k := key(item)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
