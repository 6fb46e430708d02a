package domain

// PlayerPresence is one connected player as reported by the game server.
type PlayerPresence struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ServerStatus is a point-in-time snapshot of the game server. When the
// server is unreachable the snapshot degrades to Online=false with configured
// placeholder values; it never represents an error.
type ServerStatus struct {
	Online      bool             `json:"online"`
	Name        string           `json:"name"`
	Map         string           `json:"map"`
	Players     int              `json:"players"`
	MaxPlayers  int              `json:"maxPlayers"`
	PlayersList []PlayerPresence `json:"playersList"`
}
