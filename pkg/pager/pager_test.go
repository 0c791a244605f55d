package pager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"skyscraper/pkg/pager"
)

var errFetch = errors.New("fetch failed")

// pages returns a fetch func serving the given pages in order, linking them
// with cursors p1, p2, ... and ending with an empty cursor.
func pages(t *testing.T, pp ...[]string) pager.FetchFunc[string] {
	t.Helper()

	cursors := map[string]int{"": 0}
	for i := 1; i < len(pp); i++ {
		cursors[pageCursor(i)] = i
	}

	return func(_ context.Context, cursor string) (pager.Page[string], error) {
		i, ok := cursors[cursor]
		if !ok {
			return pager.Page[string]{}, errFetch
		}
		next := ""
		if i+1 < len(pp) {
			next = pageCursor(i + 1)
		}
		return pager.Page[string]{Items: pp[i], Cursor: next}, nil
	}
}

func pageCursor(i int) string {
	return string(rune('p')) + string(rune('0'+i))
}

func TestEachVisitsAllPages(t *testing.T) {
	t.Parallel()

	var got []string
	err := pager.Each(t.Context(), pager.Config{}, pages(t, []string{"a", "b"}, []string{"c"}),
		func(_ context.Context, items []string) error {
			got = append(got, items...)
			return nil
		})

	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestEachStopsOnCallbackError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	calls := 0
	err := pager.Each(t.Context(), pager.Config{}, pages(t, []string{"a"}, []string{"b"}),
		func(_ context.Context, _ []string) error {
			calls++
			return errStop
		})

	require.ErrorIs(t, err, errStop)
	require.Equal(t, 1, calls)
}

func TestEachPropagatesFetchError(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context, _ string) (pager.Page[string], error) {
		return pager.Page[string]{}, errFetch
	}
	err := pager.Each(t.Context(), pager.Config{}, fetch, func(_ context.Context, _ []string) error {
		return nil
	})

	require.ErrorIs(t, err, errFetch)
}

func TestEachEnforcesPageBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(_ context.Context, _ string) (pager.Page[string], error) {
		calls++
		return pager.Page[string]{Items: []string{"x"}, Cursor: pageCursor(calls)}, nil
	}
	err := pager.Each(t.Context(), pager.Config{MaxPages: 5}, fetch, func(_ context.Context, _ []string) error {
		return nil
	})

	require.ErrorIs(t, err, pager.ErrTooManyPages)
	require.Equal(t, 5, calls)
}

func TestEachStopsOnRepeatedCursor(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context, _ string) (pager.Page[string], error) {
		return pager.Page[string]{Items: []string{"x"}, Cursor: "same"}, nil
	}

	calls := 0
	err := pager.Each(t.Context(), pager.Config{}, fetch, func(_ context.Context, _ []string) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestCollectUniqueDedups(t *testing.T) {
	t.Parallel()

	// page 2 repeats "b" from page 1; the true cardinality is 4.
	fetch := pages(t,
		[]string{"a", "b"},
		[]string{"b", "c"},
		[]string{"d", "a"},
	)

	got, err := pager.CollectUnique(t.Context(), pager.Config{}, fetch, func(s string) string { return s })

	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, got)
}
