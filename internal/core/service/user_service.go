package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// UserService implements account upserts, role changes and the admin listing.
type UserService struct {
	repo         ports.UserRepository
	ownerSteamID string
	logger       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, ownerSteamID string, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, ownerSteamID: ownerSteamID, logger: logger}
}

// CompleteSignIn upserts the user record for a verified identity. A new
// identity gets role PLAYER, or OWNER when it matches the configured owner.
// Role and registration time of an existing record are never touched; the
// refresh runs atomically so a concurrent role change cannot be overwritten
// with a stale copy.
func (s *UserService) CompleteSignIn(ctx context.Context, profile ports.SignInProfile) (*domain.User, error) {
	now := time.Now().UTC()
	registered := false

	user, err := s.repo.Mutate(ctx, profile.SteamID, func(u *domain.User, found bool) error {
		if !found {
			registered = true
			u.Role = domain.RolePlayer
			if profile.SteamID == s.ownerSteamID {
				u.Role = domain.RoleOwner
			}
			u.RegisteredAt = now
		}
		u.DisplayName = profile.DisplayName
		u.Avatar = profile.Avatar
		u.LastLogin = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if registered {
		s.logger.Info().Str("steam_id", user.SteamID).Str("role", string(user.Role)).Msg("new user registered")
	}
	return user, nil
}

// ChangeRole overwrites the target's role. Restricted to actors at the top
// role level; the target may be the actor themselves.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, targetSteamID string, newRole domain.Role) (*domain.User, error) {
	if !domain.Authorize(actor, domain.LevelOwner) {
		return nil, domain.ErrForbidden
	}
	if !newRole.Valid() {
		return nil, domain.ErrInvalidRole
	}

	target, err := s.repo.Mutate(ctx, targetSteamID, func(u *domain.User, found bool) error {
		if !found {
			return domain.ErrUserNotFound
		}
		u.Role = newRole
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("actor", actor.SteamID).
		Str("target", target.SteamID).
		Str("role", string(newRole)).
		Msg("role changed")

	return target, nil
}

// ListUsers returns every user joined with role display metadata.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]ports.UserAccount, error) {
	if !domain.Authorize(actor, domain.LevelAdmin) {
		return nil, domain.ErrForbidden
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]ports.UserAccount, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, ports.UserAccount{User: u, RoleInfo: u.Role.Info()})
	}
	return accounts, nil
}
