package memstore_test

import (
	"testing"

	"github.com/lawbridge/go-session-core/store/memstore"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRemove(t *testing.T) {
	ms := memstore.New()

	_, ok := ms.Read("token")
	require.False(t, ok)

	ms.Write("token", "tok-1")
	got, ok := ms.Read("token")
	require.True(t, ok)
	require.Equal(t, "tok-1", got)

	ms.Write("token", "tok-2")
	got, _ = ms.Read("token")
	require.Equal(t, "tok-2", got)

	ms.Remove("token")
	_, ok = ms.Read("token")
	require.False(t, ok)

	// Removing an absent key is a no-op.
	require.NotPanics(t, func() { ms.Remove("token") })
}

func TestSnapshotIsACopy(t *testing.T) {
	ms := memstore.New()
	ms.Write("a", "1")

	snap := ms.Snapshot()
	snap["a"] = "mutated"

	got, _ := ms.Read("a")
	require.Equal(t, "1", got)
}
