package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/units"
)

type NormalizeRequest struct {
	Type      entries.MetricType `json:"type"`
	Value     interface{}        `json:"value"`
	Unit      string             `json:"unit,omitempty"`
	Timestamp *time.Time         `json:"timestamp,omitempty"`
}

type ValidateRequest struct {
	Preference units.Preference `json:"preference"`
	Rows       []units.Row      `json:"rows"`
}

type ValidateResponse struct {
	Accepted int               `json:"accepted"`
	Rejected int               `json:"rejected"`
	Results  []units.RowResult `json:"results"`
}

// NormalizeMetric converts one value to storage units and validates it. Rejections
// are returned as 422 with the reason.
func (h *Handler) NormalizeMetric(c echo.Context) error {
	request := NormalizeRequest{}
	if err := c.Bind(&request); err != nil {
		return err
	}
	normalized, err := Normalize(request, h.clock())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, normalized)
}

// ValidateMetrics checks an import batch row by row. The response is 200 even when
// rows are rejected.
func (h *Handler) ValidateMetrics(c echo.Context) error {
	request := ValidateRequest{}
	if err := c.Bind(&request); err != nil {
		return err
	}

	response := ValidateResponse{
		Results: units.ValidateRows(request.Rows, request.Preference, h.clock()),
	}
	for _, r := range response.Results {
		if r.Valid() {
			response.Accepted++
		} else {
			response.Rejected++
		}
	}
	return c.JSON(http.StatusOK, response)
}

// Normalize runs unit conversion, range validation and, when a timestamp is given,
// timestamp validation for a single value.
func Normalize(request NormalizeRequest, now time.Time) (*units.Normalized, error) {
	pref := units.StoragePreference()
	if request.Unit != "" {
		unit, err := units.ParseUnit(request.Unit)
		if err != nil {
			return nil, &units.Rejection{Field: "unit", Reason: err.Error()}
		}
		pref = pref.WithUnit(request.Type, unit)
	}

	normalized, err := units.Normalize(request.Type, request.Value, pref)
	if err != nil {
		return nil, err
	}
	if err := units.ValidateValue(request.Type, normalized.Payload); err != nil {
		return nil, err
	}
	if request.Timestamp != nil {
		if err := units.ValidateTimestamp(*request.Timestamp, now); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}
