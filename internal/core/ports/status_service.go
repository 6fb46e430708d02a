package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// GameQuerier performs one bounded query against the game server.
type GameQuerier interface {
	Query(ctx context.Context) (*domain.ServerStatus, error)
}

// StatusService exposes the live server status. Fetch never fails: when the
// server is unreachable it degrades to an offline snapshot.
type StatusService interface {
	Fetch(ctx context.Context) *domain.ServerStatus
}
