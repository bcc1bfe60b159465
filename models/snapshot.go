package models

import "time"

// LobbySnapshot is the single cached unit of lobby data: the last fetched
// banner and room lists plus the time they were captured. A new snapshot
// always replaces the previous one wholesale.
type LobbySnapshot struct {
	Banners   []Banner  `json:"banners"`
	Rooms     []Room    `json:"rooms"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the snapshot is younger than ttl.
func (s *LobbySnapshot) Fresh(ttl time.Duration) bool {
	if s == nil || s.FetchedAt.IsZero() {
		return false
	}
	return time.Since(s.FetchedAt) < ttl
}

// Age returns how long ago the snapshot was captured.
func (s *LobbySnapshot) Age() time.Duration {
	if s == nil || s.FetchedAt.IsZero() {
		return 0
	}
	return time.Since(s.FetchedAt)
}
