package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

const (
	// SessionCookie is the name of the signed session cookie.
	SessionCookie = "session"
	// SessionTTL is the fixed session lifetime. Not sliding: the expiry is
	// set once at sign-in.
	SessionTTL = 7 * 24 * time.Hour

	userContextKey = "user"
)

// NewSessionCookie issues the signed session cookie binding the browser to a
// Steam identity for SessionTTL.
func NewSessionCookie(secret, steamID string, now time.Time) (*http.Cookie, error) {
	claims := jwt.MapClaims{
		"sub": steamID,
		"iat": now.Unix(),
		"exp": now.Add(SessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(SessionTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ExpiredSessionCookie returns a cookie that clears the session binding.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Session resolves the request's session cookie into a user record and
// stores it request-scoped. A missing, invalid or expired cookie simply
// leaves the request unauthenticated; gating is done by RequireAuth and
// RequireLevel. The user is re-read from the store on every request so role
// changes take effect immediately.
func Session(secret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			steamID, err := parseSessionToken(secret, cookie.Value)
			if err != nil {
				return next(c)
			}

			user, err := users.FindBySteamID(c.Request().Context(), steamID)
			if err != nil {
				// A deleted account reads as anonymous; a store failure must
				// not silently downgrade the caller.
				if errors.Is(err, domain.ErrUserNotFound) {
					return next(c)
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no valid session.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// RequireLevel rejects requests whose user sits below minLevel in the role
// order. Implies RequireAuth.
func RequireLevel(minLevel int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrUnauthenticated
			}
			if !domain.Authorize(user, minLevel) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// CurrentUser returns the request's resolved user, or nil when the request
// is unauthenticated.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetCurrentUser injects a user into the request context. Exposed for
// handler tests.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

func parseSessionToken(secret, token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	steamID, _ := claims["sub"].(string)
	if steamID == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return steamID, nil
}
