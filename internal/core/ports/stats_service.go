package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// StatsService defines the gameplay statistics use cases.
type StatsService interface {
	// Get returns the stored record for steamID, or a zero-valued default.
	Get(ctx context.Context, steamID string) (*domain.PlayerStats, error)
	// Update merges the submitted fields into the stored record. apiKey must
	// equal the configured shared secret; the target user must exist.
	Update(ctx context.Context, apiKey, steamID string, patch domain.StatsPatch) (*domain.PlayerStats, error)
}
