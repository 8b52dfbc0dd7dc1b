package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/metabolic-health/coach/analytics"
)

func (h *Handler) GetOverview(c echo.Context) error {
	overview, err := h.analytics.Overview(c.Request().Context(), analytics.Scope{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

func (h *Handler) GetCoachOverview(c echo.Context) error {
	scope, err := coachScope(c)
	if err != nil {
		return err
	}
	overview, err := h.analytics.Overview(c.Request().Context(), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

func (h *Handler) GetCoachFlags(c echo.Context) error {
	scope, err := coachScope(c)
	if err != nil {
		return err
	}
	report, err := h.analytics.Flags(c.Request().Context(), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) GetCoachMacros(c echo.Context) error {
	scope, err := coachScope(c)
	if err != nil {
		return err
	}
	days, err := positiveQueryInt(c, "days")
	if err != nil {
		return err
	}
	report, err := h.analytics.Macros(c.Request().Context(), scope, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) GetCoachOutcomes(c echo.Context) error {
	scope, err := coachScope(c)
	if err != nil {
		return err
	}
	days, err := positiveQueryInt(c, "days")
	if err != nil {
		return err
	}
	report, err := h.analytics.Outcomes(c.Request().Context(), scope, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) GetCoachTrends(c echo.Context) error {
	scope, err := coachScope(c)
	if err != nil {
		return err
	}
	weeks, err := positiveQueryInt(c, "weeks")
	if err != nil {
		return err
	}
	report, err := h.analytics.Trends(c.Request().Context(), scope, weeks)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) GetParticipantReport(c echo.Context) error {
	report, err := h.analytics.ParticipantReport(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) GetParticipantConsistency(c echo.Context) error {
	weeks, err := positiveQueryInt(c, "weeks")
	if err != nil {
		return err
	}
	consistency, err := h.analytics.Consistency(c.Request().Context(), c.Param("userId"), weeks)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consistency)
}
