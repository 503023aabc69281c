package status

import (
	"context"
	"testing"
	"time"

	"github.com/camaraaberta/ceap/internal/upload/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.Status{ID: "u1", State: domain.StateQueued}))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StateQueued, got.State)

	missing, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.Status{ID: "u1", State: domain.StateQueued}))
	require.NoError(t, store.Put(ctx, domain.Status{ID: "u1", State: domain.StateCompleted}))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StateCompleted, got.State)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.Status{ID: "u1", State: domain.StateQueued}))
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
