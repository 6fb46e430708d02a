package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// StatsRepository defines persistence for the stats collection.
type StatsRepository interface {
	// FindBySteamID returns the stored record, or a zero-valued record
	// carrying the steamID when none exists. Absence is not an error.
	FindBySteamID(ctx context.Context, steamID string) (*domain.PlayerStats, error)
	// Mutate applies fn to the stored record (or the zero-valued default)
	// and writes the result back inside one transaction, so concurrent
	// merges for the same player cannot lose fields.
	Mutate(ctx context.Context, steamID string, fn func(stats *domain.PlayerStats) error) (*domain.PlayerStats, error)
}
