package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"campusevents/internal/repository/memory"
	"campusevents/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedEvents(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewEventService(memory.NewEventRepository(nil), logger, time.Second)

	n, err := seedEvents(ctx, svc, false)
	require.NoError(t, err)
	assert.Equal(t, len(sampleEvents), n)

	n, err = seedEvents(ctx, svc, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "non-empty store is left alone")

	n, err = seedEvents(ctx, svc, true)
	require.NoError(t, err)
	assert.Equal(t, len(sampleEvents), n)

	all, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2*len(sampleEvents))
	seen := map[int64]bool{}
	for _, e := range all {
		assert.False(t, seen[e.ID], "ids are unique")
		seen[e.ID] = true
		assert.Equal(t, 0, e.Likes)
	}
}

func TestSampleEvents_are_valid(t *testing.T) {
	for _, in := range sampleEvents {
		assert.NoError(t, in.Validate(), in.Title)
	}
}
