package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationStore_RevokeThenLookup(t *testing.T) {
	t.Parallel()

	store := NewRevocationStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))

	got, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, got)

	got, err = store.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, got)
}

func TestMemoryRevocationStore_LazyEviction(t *testing.T) {
	t.Parallel()

	store := NewRevocationStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	got, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, got)
}

func TestMemoryRevocationStore_RejectsEmptyJTI(t *testing.T) {
	t.Parallel()

	store := NewRevocationStore()
	require.Error(t, store.Revoke(context.Background(), "", time.Minute))
}

func TestMemoryRevocationStore_NonPositiveTTLIsNoop(t *testing.T) {
	t.Parallel()

	store := NewRevocationStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", 0))

	got, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, got)
}
