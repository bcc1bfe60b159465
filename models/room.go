package models

// Room is one poker room record as the upstream rooms endpoint emits it.
// Numeric fields may be absent in the payload; display defaults are applied
// at render time, not here.
type Room struct {
	ID             int    `json:"id"`
	RoomName       string `json:"room_name"`
	RoomURL        string `json:"room_url"`
	Blinds         string `json:"blinds"`
	MinBuyin       string `json:"min_buyin"`
	GameTime       string `json:"game_time"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	CurrentPlayers *int   `json:"current_players"`
	MaxPlayers     *int   `json:"max_players"`
	Contact        string `json:"contact,omitempty"`
}
