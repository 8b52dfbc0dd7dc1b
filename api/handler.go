package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/fx"

	"github.com/metabolic-health/coach/analytics"
	"github.com/metabolic-health/coach/errors"
)

type Handler struct {
	analytics analytics.Service
	clock     analytics.Clock
}

type Params struct {
	fx.In

	Analytics analytics.Service
	Clock     analytics.Clock
}

func NewHandler(p Params) *Handler {
	clock := p.Clock
	if clock == nil {
		clock = analytics.SystemClock()
	}
	return &Handler{
		analytics: p.Analytics,
		clock:     clock,
	}
}

func RegisterHandlers(e *echo.Echo, h *Handler) {
	v1 := e.Group("/v1")

	v1.GET("/overview", h.GetOverview)
	v1.GET("/coaches/:coachId/overview", h.GetCoachOverview)
	v1.GET("/coaches/:coachId/flags", h.GetCoachFlags)
	v1.GET("/coaches/:coachId/macros", h.GetCoachMacros)
	v1.GET("/coaches/:coachId/outcomes", h.GetCoachOutcomes)
	v1.GET("/coaches/:coachId/trends", h.GetCoachTrends)

	v1.GET("/participants/:userId/report", h.GetParticipantReport)
	v1.GET("/participants/:userId/consistency", h.GetParticipantConsistency)

	v1.POST("/metrics/normalize", h.NormalizeMetric)
	v1.POST("/metrics/validate", h.ValidateMetrics)
}

// positiveQueryInt binds an optional query parameter the way generated handlers do.
// 0 is returned when the parameter is absent.
func positiveQueryInt(c echo.Context, name string) (int, error) {
	value := 0
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, errors.BadRequest)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be positive: %w", name, errors.BadRequest)
	}
	return value, nil
}

func coachScope(c echo.Context) (analytics.Scope, error) {
	coachId := c.Param("coachId")
	if coachId == "" {
		return analytics.Scope{}, fmt.Errorf("coach id is required: %w", errors.BadRequest)
	}
	return analytics.Scope{CoachId: &coachId}, nil
}
