package services

import (
	"encoding/json"
	"time"

	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"
)

// snapshotKey is the single well-known slot the lobby snapshot lives under.
// At most one snapshot exists; every write overwrites the previous one.
const snapshotKey = "lobby:snapshot"

// SnapshotStore persists the lobby snapshot in a local buntdb key-value file.
// It is the Go equivalent of the mini-app's localStorage cache slot: one
// JSON-serialized {data, timestamp} value under a fixed key, surviving
// restarts, with a malformed value treated as a cache miss.
type SnapshotStore struct {
	db  *buntdb.DB
	ttl time.Duration
}

// NewSnapshotStore opens (or creates) the local cache database.
// Pass ":memory:" for an ephemeral store in tests.
func NewSnapshotStore(path string, ttl time.Duration) (*SnapshotStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{db: db, ttl: ttl}, nil
}

// Load reads the snapshot slot. It returns ok=false when the slot is absent
// or holds a payload that does not decode; a malformed payload is logged and
// otherwise ignored, never surfaced as an error.
func (s *SnapshotStore) Load() (*models.LobbySnapshot, bool) {
	var raw string
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(snapshotKey)
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if err != nil {
		if err != buntdb.ErrNotFound {
			logrus.WithError(err).Warn("Failed to read lobby snapshot slot")
		}
		return nil, false
	}

	var snap models.LobbySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		cacheErr := shared.NewCacheError("SnapshotStore", "Load", "stored snapshot does not decode, treating as cache miss", err)
		cacheErr.LogError()
		return nil, false
	}
	return &snap, true
}

// LoadFresh reads the snapshot slot and additionally requires it to be
// younger than the configured TTL.
func (s *SnapshotStore) LoadFresh() (*models.LobbySnapshot, bool) {
	snap, ok := s.Load()
	if !ok || !snap.Fresh(s.ttl) {
		return nil, false
	}
	return snap, true
}

// Store overwrites the snapshot slot wholesale. The capture timestamp is
// stamped here when the caller left it zero.
func (s *SnapshotStore) Store(snap models.LobbySnapshot) error {
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(snapshotKey, string(payload), nil)
		return err
	})
}

// TTL returns the configured staleness window.
func (s *SnapshotStore) TTL() time.Duration {
	return s.ttl
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
