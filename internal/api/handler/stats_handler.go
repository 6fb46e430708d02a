package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/api/metrics"
	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// StatsHandler serves gameplay statistics reads and the game server's
// shared-secret-gated update push.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /api/stats/:id — the stored record or a zero default.
//
// @Summary      Get a player's stats
// @Tags         stats
// @Produce      json
// @Param        id   path      string  true  "SteamID64"
// @Success      200  {object}  statsResponse
// @Router       /api/stats/{id} [get]
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{PlayerStats: *stats, KD: stats.KD()})
}

// Update handles POST /api/stats/update — the trusted game-server push.
//
// @Summary      Merge a partial stats update
// @Tags         stats
// @Accept       json
// @Produce      json
// @Param        body  body      statsUpdateRequest  true  "Shared secret, identity and partial counters"
// @Success      200   {object}  statsUpdateResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/stats/update [post]
func (h *StatsHandler) Update(c echo.Context) error {
	var req statsUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.service.Update(c.Request().Context(), req.APIKey, req.SteamID, req.Data); err != nil {
		switch {
		case errors.Is(err, domain.ErrBadStatsKey):
			metrics.StatsUpdatesTotal.WithLabelValues("bad_key").Inc()
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.StatsUpdatesTotal.WithLabelValues("unknown_player").Inc()
		}
		return err
	}

	metrics.StatsUpdatesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, statsUpdateResponse{Success: true})
}
