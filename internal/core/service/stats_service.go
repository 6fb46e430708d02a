package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"

	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// StatsService implements reads and shared-secret-gated merges of the
// per-player gameplay counters.
type StatsService struct {
	repo   ports.StatsRepository
	users  ports.UserRepository
	apiKey string
	logger zerolog.Logger
}

func NewStatsService(repo ports.StatsRepository, users ports.UserRepository, apiKey string, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, users: users, apiKey: apiKey, logger: logger}
}

// Get returns the stored record, or a zero-valued default for unknown ids.
func (s *StatsService) Get(ctx context.Context, steamID string) (*domain.PlayerStats, error) {
	return s.repo.FindBySteamID(ctx, steamID)
}

// Update merges the submitted fields into the stored record. The caller is
// the trusted game-server process, authenticated by the shared secret; the
// target identity must belong to a registered user. The merge runs inside
// one store transaction so concurrent pushes for the same player cannot
// lose fields.
func (s *StatsService) Update(ctx context.Context, apiKey, steamID string, patch domain.StatsPatch) (*domain.PlayerStats, error) {
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.apiKey)) != 1 {
		return nil, domain.ErrBadStatsKey
	}

	if _, err := s.users.FindBySteamID(ctx, steamID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stats, err := s.repo.Mutate(ctx, steamID, func(st *domain.PlayerStats) error {
		patch.Apply(st, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("steam_id", steamID).Msg("stats merged")
	return stats, nil
}
