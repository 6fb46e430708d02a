package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/absoluteru/community-api/internal/api/metrics"
	"github.com/absoluteru/community-api/internal/api/middleware"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// AuthHandler drives the external sign-in flow and the session cookie
// lifecycle.
type AuthHandler struct {
	provider      ports.IdentityProvider
	userService   ports.UserService
	sessionSecret string
	logger        zerolog.Logger
}

func NewAuthHandler(provider ports.IdentityProvider, userService ports.UserService, sessionSecret string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		provider:      provider,
		userService:   userService,
		sessionSecret: sessionSecret,
		logger:        logger,
	}
}

// Login handles GET /auth/login — redirects the browser to the identity
// provider.
//
// @Summary      Begin Steam sign-in
// @Tags         auth
// @Success      302
// @Router       /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.provider.AuthURL())
}

// Return handles GET /auth/login/return — completes the sign-in. Any failure
// redirects home without creating a session.
//
// @Summary      Complete Steam sign-in
// @Tags         auth
// @Success      302
// @Router       /auth/login/return [get]
func (h *AuthHandler) Return(c echo.Context) error {
	ctx := c.Request().Context()

	steamID, err := h.provider.VerifyCallback(ctx, c.QueryParams())
	if err != nil {
		h.logger.Warn().Err(err).Msg("sign-in assertion rejected")
		metrics.SignInsTotal.WithLabelValues("failed").Inc()
		return c.Redirect(http.StatusFound, "/")
	}

	profile, err := h.provider.FetchProfile(ctx, steamID)
	if err != nil {
		h.logger.Warn().Err(err).Str("steam_id", steamID).Msg("profile fetch failed")
		metrics.SignInsTotal.WithLabelValues("failed").Inc()
		return c.Redirect(http.StatusFound, "/")
	}

	user, err := h.userService.CompleteSignIn(ctx, *profile)
	if err != nil {
		h.logger.Error().Err(err).Str("steam_id", steamID).Msg("sign-in upsert failed")
		metrics.SignInsTotal.WithLabelValues("failed").Inc()
		return c.Redirect(http.StatusFound, "/")
	}

	now := time.Now().UTC()
	cookie, err := middleware.NewSessionCookie(h.sessionSecret, user.SteamID, now)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	result := "returning"
	if user.RegisteredAt.Equal(user.LastLogin) {
		result = "new_user"
	}
	metrics.SignInsTotal.WithLabelValues(result).Inc()

	return c.Redirect(http.StatusFound, "/#profile")
}

// Logout handles GET /auth/logout — clears the session binding.
//
// @Summary      Sign out
// @Tags         auth
// @Success      302
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.ExpiredSessionCookie())
	return c.Redirect(http.StatusFound, "/")
}
