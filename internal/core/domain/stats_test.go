package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestStatsPatch_Apply_PartialMerge(t *testing.T) {
	stats := PlayerStats{
		SteamID:     "76561198000000001",
		PlayTime:    3600,
		Kills:       10,
		Deaths:      4,
		Escapes:     2,
		GamesPlayed: 7,
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	patch := StatsPatch{Kills: intPtr(12), GamesPlayed: intPtr(8)}
	patch.Apply(&stats, now)

	if stats.Kills != 12 || stats.GamesPlayed != 8 {
		t.Fatalf("patched fields not applied: %+v", stats)
	}
	if stats.PlayTime != 3600 || stats.Deaths != 4 || stats.Escapes != 2 {
		t.Fatalf("untouched fields changed: %+v", stats)
	}
	if !stats.LastPlayed.Equal(now) {
		t.Fatalf("LastPlayed = %v, want %v", stats.LastPlayed, now)
	}
}

func TestStatsPatch_Apply_AllFields(t *testing.T) {
	var stats PlayerStats
	now := time.Now().UTC()

	patch := StatsPatch{
		PlayTime:    int64Ptr(120),
		Kills:       intPtr(1),
		Deaths:      intPtr(2),
		Escapes:     intPtr(3),
		GamesPlayed: intPtr(4),
	}
	patch.Apply(&stats, now)

	if stats.PlayTime != 120 || stats.Kills != 1 || stats.Deaths != 2 || stats.Escapes != 3 || stats.GamesPlayed != 4 {
		t.Fatalf("unexpected merge result: %+v", stats)
	}
}

func TestPlayerStats_KD(t *testing.T) {
	cases := []struct {
		kills, deaths int
		want          float64
	}{
		{10, 4, 2.5},
		{7, 0, 7}, // zero deaths: kill count stands in
		{0, 0, 0},
		{0, 5, 0},
	}
	for _, tc := range cases {
		s := PlayerStats{Kills: tc.kills, Deaths: tc.deaths}
		if got := s.KD(); got != tc.want {
			t.Errorf("KD(%d/%d) = %v, want %v", tc.kills, tc.deaths, got, tc.want)
		}
	}
}
