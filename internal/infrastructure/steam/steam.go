// Package steam implements the identity provider against Steam: the OpenID
// 2.0 sign-in exchange and the Web API profile lookup.
package steam

import (
	"net/http"
	"sync"
	"time"

	"github.com/absoluteru/community-api/internal/core/ports"
)

const (
	openIDEndpoint = "https://steamcommunity.com/openid/login"
	webAPIBase     = "https://api.steampowered.com"

	defaultTimeout = 10 * time.Second
)

// Provider implements ports.IdentityProvider.
type Provider struct {
	apiKey     string
	realm      string // public base URL, e.g. https://example.com
	returnURL  string // realm + /auth/login/return
	httpClient *http.Client

	// Consumed response nonces within the validity window. A replayed
	// callback must not mint a second session.
	nonceMu sync.Mutex
	nonces  map[string]time.Time
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider builds a Provider. realm is the public base URL of this
// service; the sign-in return route is derived from it.
func NewProvider(apiKey, realm string) *Provider {
	return &Provider{
		apiKey:     apiKey,
		realm:      realm,
		returnURL:  realm + "/auth/login/return",
		httpClient: &http.Client{Timeout: defaultTimeout},
		nonces:     make(map[string]time.Time),
	}
}
