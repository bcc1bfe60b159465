package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotFreshness(t *testing.T) {
	ttl := 5 * time.Minute

	var nilSnap *LobbySnapshot
	require.False(t, nilSnap.Fresh(ttl))
	require.False(t, (&LobbySnapshot{}).Fresh(ttl), "zero capture time is never fresh")

	young := &LobbySnapshot{FetchedAt: time.Now().Add(-time.Minute)}
	require.True(t, young.Fresh(ttl))

	old := &LobbySnapshot{FetchedAt: time.Now().Add(-ttl)}
	require.False(t, old.Fresh(ttl), "an entry exactly at the window is stale")
}
