package api

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/metabolic-health/coach/errors"
)

type HealthCheck struct {
	ready atomic.Bool
}

func NewHealthCheck() *HealthCheck {
	return &HealthCheck{}
}

func (h *HealthCheck) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Ready is the readiness probe. It reports 503 until the database has been reached.
func (h *HealthCheck) Ready(c echo.Context) error {
	if !h.ready.Load() {
		return fmt.Errorf("database not reached yet: %w", errors.ServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
