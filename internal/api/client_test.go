package api_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"skyscraper/internal/api"
	"skyscraper/internal/config"
)

func TestInitRequiresCredentials(t *testing.T) {
	t.Parallel()

	client := &api.Client{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{},
	}

	err := client.Init(t.Context())
	require.ErrorIs(t, err, api.ErrNoCredentials)

	// Shutdown still runs after a failed Init.
	require.NoError(t, client.Shutdown(t.Context()))
}
