package domain

import "time"

// PlayerStats holds per-player aggregate counters pushed by the game server.
// A player without a record reads as the zero value, never as an error.
type PlayerStats struct {
	SteamID     string    `json:"steamID"`
	PlayTime    int64     `json:"playTime"` // seconds
	Kills       int       `json:"kills"`
	Deaths      int       `json:"deaths"`
	Escapes     int       `json:"escapes"`
	GamesPlayed int       `json:"gamesPlayed"`
	LastPlayed  time.Time `json:"lastPlayed"`
}

// KD returns the kill/death ratio; with zero deaths the kill count stands in
// as the ratio.
func (s PlayerStats) KD() float64 {
	if s.Deaths == 0 {
		return float64(s.Kills)
	}
	return float64(s.Kills) / float64(s.Deaths)
}

// StatsPatch is a partial stats update. Nil fields are left untouched by
// Apply; present fields overwrite the stored value (shallow merge).
type StatsPatch struct {
	PlayTime    *int64 `json:"playTime,omitempty"`
	Kills       *int   `json:"kills,omitempty"`
	Deaths      *int   `json:"deaths,omitempty"`
	Escapes     *int   `json:"escapes,omitempty"`
	GamesPlayed *int   `json:"gamesPlayed,omitempty"`
}

// Apply merges the patch into s and stamps the update time.
func (p StatsPatch) Apply(s *PlayerStats, now time.Time) {
	if p.PlayTime != nil {
		s.PlayTime = *p.PlayTime
	}
	if p.Kills != nil {
		s.Kills = *p.Kills
	}
	if p.Deaths != nil {
		s.Deaths = *p.Deaths
	}
	if p.Escapes != nil {
		s.Escapes = *p.Escapes
	}
	if p.GamesPlayed != nil {
		s.GamesPlayed = *p.GamesPlayed
	}
	s.LastPlayed = now
}
