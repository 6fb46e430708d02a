package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// UserRepository defines persistence for the users collection.
type UserRepository interface {
	// FindBySteamID returns the user keyed by steamID, or
	// domain.ErrUserNotFound when no such record exists.
	FindBySteamID(ctx context.Context, steamID string) (*domain.User, error)
	// Mutate applies fn to the record keyed by steamID and writes the result
	// back, all inside one transaction so concurrent mutations of the same
	// record cannot lose updates. fn receives the stored record, or a record
	// carrying only the steamID with found=false when none exists; an error
	// from fn aborts the write and is returned as-is.
	Mutate(ctx context.Context, steamID string, fn func(user *domain.User, found bool) error) (*domain.User, error)
	// List returns every user, ordered by registration time.
	List(ctx context.Context) ([]domain.User, error)
}
