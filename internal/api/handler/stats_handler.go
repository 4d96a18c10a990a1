package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Dashboard handles GET /stats.
//
// @Summary      Dashboard counters
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /stats [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}
