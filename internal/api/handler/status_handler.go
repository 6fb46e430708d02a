package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/api/metrics"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// StatusHandler serves the live game server status.
type StatusHandler struct {
	service ports.StatusService
}

func NewStatusHandler(service ports.StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

// Get handles GET /api/server/status. Never fails: an unreachable game
// server degrades to an offline snapshot.
//
// @Summary      Get live server status
// @Tags         server
// @Produce      json
// @Success      200  {object}  domain.ServerStatus
// @Router       /api/server/status [get]
func (h *StatusHandler) Get(c echo.Context) error {
	status := h.service.Fetch(c.Request().Context())

	result := "offline"
	if status.Online {
		result = "online"
	}
	metrics.StatusQueriesTotal.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, status)
}
