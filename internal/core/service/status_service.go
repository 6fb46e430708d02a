package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// StatusService wraps the game querier with the offline fallback. Every call
// is an independent best-effort attempt: no retry, no backoff, no caching.
type StatusService struct {
	querier    ports.GameQuerier
	serverName string
	maxPlayers int
	offlineMap string
	logger     zerolog.Logger
}

// NewStatusService builds a StatusService. serverName and maxPlayers fill the
// placeholder snapshot returned while the game server is unreachable.
func NewStatusService(querier ports.GameQuerier, serverName string, maxPlayers int, logger zerolog.Logger) *StatusService {
	return &StatusService{
		querier:    querier,
		serverName: serverName,
		maxPlayers: maxPlayers,
		offlineMap: "Unavailable",
		logger:     logger,
	}
}

// Fetch returns the current snapshot. Query failures degrade to an offline
// snapshot and are never surfaced to the caller.
func (s *StatusService) Fetch(ctx context.Context) *domain.ServerStatus {
	status, err := s.querier.Query(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("game server query failed")
		return &domain.ServerStatus{
			Online:      false,
			Name:        s.serverName,
			Map:         s.offlineMap,
			Players:     0,
			MaxPlayers:  s.maxPlayers,
			PlayersList: []domain.PlayerPresence{},
		}
	}

	if status.Name == "" {
		status.Name = s.serverName
	}
	if status.MaxPlayers == 0 {
		status.MaxPlayers = s.maxPlayers
	}
	if status.PlayersList == nil {
		status.PlayersList = []domain.PlayerPresence{}
	}
	return status
}
