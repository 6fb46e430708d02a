package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/api/middleware"
	"github.com/absoluteru/community-api/internal/core/domain"
)

// mustCurrentUser returns the request's session user. Routes calling it sit
// behind RequireAuth/RequireLevel, so a missing user means the middleware
// chain is miswired; fail closed with 401 rather than panicking.
func mustCurrentUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
