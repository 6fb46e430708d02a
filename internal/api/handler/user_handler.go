package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/api/metrics"
	"github.com/absoluteru/community-api/internal/api/middleware"
	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// UserHandler serves the session profile and the admin user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Current handles GET /api/user — the session profile, or the
// unauthenticated marker. Never fails.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  currentUserResponse
// @Router       /api/user [get]
func (h *UserHandler) Current(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusOK, currentUserResponse{Authenticated: false})
	}

	info := user.Role.Info()
	return c.JSON(http.StatusOK, currentUserResponse{
		Authenticated: true,
		SteamID:       user.SteamID,
		DisplayName:   user.DisplayName,
		Avatar:        user.Avatar,
		Role:          user.Role,
		RoleInfo:      &info,
		RegisteredAt:  &user.RegisteredAt,
		LastLogin:     &user.LastLogin,
	})
}

// List handles GET /api/admin/users — all users with role metadata.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   ports.UserAccount
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	accounts, err := h.service.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// ChangeRole handles POST /api/admin/change-role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      changeRoleRequest  true  "Target identity and new role"
// @Success      200   {object}  changeRoleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/change-role [post]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	actor, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.ChangeRole(c.Request().Context(), actor, req.SteamID, domain.Role(req.NewRole))
	if err != nil {
		return err
	}

	metrics.RoleChangesTotal.Inc()
	return c.JSON(http.StatusOK, changeRoleResponse{
		Success: true,
		User:    ports.UserAccount{User: *user, RoleInfo: user.Role.Info()},
	})
}
