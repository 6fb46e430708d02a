package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	claimedIDPrefix = "https://steamcommunity.com/openid/id/"

	// Response nonces older than this are rejected outright; consumed ones
	// are remembered for the same window.
	maxNonceAge  = 5 * time.Minute
	maxNonceSkew = time.Minute
)

var (
	ErrAssertionRejected = errors.New("steam: assertion rejected by provider")
	ErrMalformedIdentity = errors.New("steam: malformed claimed identity")
	ErrReturnToMismatch  = errors.New("steam: assertion issued for another return URL")
	ErrStaleNonce        = errors.New("steam: stale or malformed response nonce")
	ErrNonceReplayed     = errors.New("steam: response nonce already consumed")
)

// AuthURL returns the provider URL the browser is redirected to in order to
// begin the sign-in flow.
func (p *Provider) AuthURL() string {
	params := url.Values{
		"openid.ns":         {"http://specs.openid.net/auth/2.0"},
		"openid.mode":       {"checkid_setup"},
		"openid.return_to":  {p.returnURL},
		"openid.realm":      {p.realm},
		"openid.identity":   {"http://specs.openid.net/auth/2.0/identifier_select"},
		"openid.claimed_id": {"http://specs.openid.net/auth/2.0/identifier_select"},
	}
	return openIDEndpoint + "?" + params.Encode()
}

// VerifyCallback validates the provider's positive assertion: the assertion
// must be addressed to this service's own return URL, carry a fresh unused
// response nonce, and survive a check_authentication replay. The SteamID64
// is extracted from the claimed identity.
func (p *Provider) VerifyCallback(ctx context.Context, params url.Values) (string, error) {
	if params.Get("openid.mode") != "id_res" {
		return "", ErrAssertionRejected
	}
	// An assertion Steam signed for a different relying party verifies fine
	// in check_authentication; the return_to binding is what ties it to us.
	if params.Get("openid.return_to") != p.returnURL {
		return "", ErrReturnToMismatch
	}

	steamID, err := steamIDFromClaimedID(params.Get("openid.claimed_id"))
	if err != nil {
		return "", err
	}

	if err := p.consumeNonce(params.Get("openid.response_nonce"), time.Now().UTC()); err != nil {
		return "", err
	}

	verify := url.Values{}
	for key, values := range params {
		if strings.HasPrefix(key, "openid.") {
			verify[key] = values
		}
	}
	verify.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openIDEndpoint,
		strings.NewReader(verify.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("steam: check_authentication status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if !hasKeyValue(string(body), "is_valid", "true") {
		return "", ErrAssertionRejected
	}

	return steamID, nil
}

// steamIDFromClaimedID extracts the numeric SteamID64 from the claimed
// identity URL.
func steamIDFromClaimedID(claimedID string) (string, error) {
	id, ok := strings.CutPrefix(claimedID, claimedIDPrefix)
	if !ok || id == "" {
		return "", ErrMalformedIdentity
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", ErrMalformedIdentity
		}
	}
	return id, nil
}

// consumeNonce validates and burns a response nonce. A nonce starts with an
// RFC 3339 UTC timestamp; it must sit inside the validity window and must
// not have been consumed before.
func (p *Provider) consumeNonce(nonce string, now time.Time) error {
	const stampLayout = "2006-01-02T15:04:05Z"
	if len(nonce) <= len(stampLayout) {
		return ErrStaleNonce
	}
	stamp, err := time.Parse(stampLayout, nonce[:len(stampLayout)])
	if err != nil {
		return ErrStaleNonce
	}
	if now.Sub(stamp) > maxNonceAge || stamp.Sub(now) > maxNonceSkew {
		return ErrStaleNonce
	}

	p.nonceMu.Lock()
	defer p.nonceMu.Unlock()

	for seen, t := range p.nonces {
		if now.Sub(t) > maxNonceAge {
			delete(p.nonces, seen)
		}
	}
	if _, dup := p.nonces[nonce]; dup {
		return ErrNonceReplayed
	}
	p.nonces[nonce] = stamp
	return nil
}

// hasKeyValue scans a key-value response body (one "key:value" per line) for
// the given pair.
func hasKeyValue(body, key, value string) bool {
	for _, line := range strings.Split(body, "\n") {
		k, v, found := strings.Cut(strings.TrimSpace(line), ":")
		if found && k == key && v == value {
			return true
		}
	}
	return false
}
