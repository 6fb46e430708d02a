package ports

import (
	"context"
	"net/url"
)

// IdentityProvider abstracts the external sign-in exchange (Steam OpenID 2.0
// in production). AuthURL starts the flow; VerifyCallback validates the
// provider's assertion and resolves the stable identity; FetchProfile pulls
// the display snapshot for that identity.
type IdentityProvider interface {
	AuthURL() string
	VerifyCallback(ctx context.Context, params url.Values) (steamID string, err error)
	FetchProfile(ctx context.Context, steamID string) (*SignInProfile, error)
}
