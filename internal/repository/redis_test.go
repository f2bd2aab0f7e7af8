package repository

import (
	"context"
	"testing"

	"octofit-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPublisher(t *testing.T) {
	ctx := context.Background()
	p := NewLocalPublisher()

	v, err := p.Version(ctx)
	require.NoError(t, err)
	assert.Zero(t, v)

	entries := []models.LeaderboardEntry{
		{ID: 2, UserID: 2, UserName: "B", Rank: 1},
		{ID: 1, UserID: 1, UserName: "A", Rank: 2},
	}
	require.NoError(t, p.Publish(ctx, entries))
	entries[0].UserName = "mutated"

	top, err := p.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "B", top[0].UserName, "snapshot must not alias the caller's slice")

	all, err := p.Top(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := p.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, p.Publish(ctx, nil))
	v, err = p.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.NoError(t, p.Ping(ctx))
}
