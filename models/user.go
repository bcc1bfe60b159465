package models

import "time"

// UserStats is the profile stats record served by the upstream users endpoint.
type UserStats struct {
	UserID        int64      `json:"user_id"`
	Username      string     `json:"username"`
	FirstName     string     `json:"first_name"`
	JoinCount     int        `json:"join_count"`
	TotalPlaytime int        `json:"total_playtime"`
	LastPlayed    *time.Time `json:"last_played"`
	CreatedAt     *time.Time `json:"created_at"`
}

// JoinRequest identifies the user behind a join-tracking call.
type JoinRequest struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}
