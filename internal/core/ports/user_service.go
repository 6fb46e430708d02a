package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// SignInProfile is the display snapshot delivered by the identity provider
// on a successful sign-in.
type SignInProfile struct {
	SteamID     string
	DisplayName string
	Avatar      string
}

// UserAccount joins a user with the display metadata of its role, the shape
// consumed by the admin listing.
type UserAccount struct {
	domain.User
	RoleInfo domain.RoleInfo `json:"roleInfo"`
}

// UserService defines the user-facing use cases around accounts and roles.
type UserService interface {
	// CompleteSignIn upserts the user for a verified identity: first sign-in
	// creates the record (role PLAYER, or OWNER for the configured owner
	// identity), later sign-ins refresh display name, avatar and last-login
	// only.
	CompleteSignIn(ctx context.Context, profile SignInProfile) (*domain.User, error)
	// ChangeRole sets the target's role. Only an OWNER-level actor may call
	// it; newRole must be a member of the role set and the target must exist.
	ChangeRole(ctx context.Context, actor *domain.User, targetSteamID string, newRole domain.Role) (*domain.User, error)
	// ListUsers returns all users joined with role metadata. The actor must
	// be at admin level or above.
	ListUsers(ctx context.Context, actor *domain.User) ([]UserAccount, error)
}
