// Package units converts user facing units to the canonical storage units and
// validates physiologic ranges. Storage units are pounds for weight, inches for
// waist, mg/dL for glucose, mmol/L for ketones and mmHg for blood pressure.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/metabolic-health/coach/entries"
)

type Unit string

const (
	Pounds     Unit = "lbs"
	Kilograms  Unit = "kg"
	Inches     Unit = "in"
	Centimeter Unit = "cm"
	MgdL       Unit = "mg/dL"
	MmolL      Unit = "mmol/L"
	MmHg       Unit = "mmHg"
)

const (
	KilogramsPerPound  = 0.453592
	CentimetersPerInch = 2.54
	MgdLPerMmolL       = 18.0182
)

// Preference is the set of display units a participant logs in.
type Preference struct {
	Weight  Unit `json:"weight,omitempty"`
	Length  Unit `json:"length,omitempty"`
	Glucose Unit `json:"glucose,omitempty"`
}

func StoragePreference() Preference {
	return Preference{Weight: Pounds, Length: Inches, Glucose: MgdL}
}

func MetricPreference() Preference {
	return Preference{Weight: Kilograms, Length: Centimeter, Glucose: MmolL}
}

// ParseUnit accepts the common spellings of the supported units.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lb", "lbs", "pound", "pounds":
		return Pounds, nil
	case "kg", "kgs", "kilogram", "kilograms":
		return Kilograms, nil
	case "in", "inch", "inches":
		return Inches, nil
	case "cm", "centimeter", "centimeters":
		return Centimeter, nil
	case "mg/dl", "mgdl":
		return MgdL, nil
	case "mmol/l", "mmol":
		return MmolL, nil
	case "mmhg":
		return MmHg, nil
	}
	return "", fmt.Errorf("unsupported unit %q", s)
}

// StorageUnit is the canonical unit a metric type is persisted in.
func StorageUnit(t entries.MetricType) Unit {
	switch t {
	case entries.MetricTypeWeight:
		return Pounds
	case entries.MetricTypeWaist:
		return Inches
	case entries.MetricTypeGlucose:
		return MgdL
	case entries.MetricTypeKetones:
		return MmolL
	case entries.MetricTypeBP:
		return MmHg
	}
	return ""
}

// PreferredUnit is the unit the participant enters values of a metric type in.
func (p Preference) PreferredUnit(t entries.MetricType) Unit {
	var u Unit
	switch t {
	case entries.MetricTypeWeight:
		u = p.Weight
	case entries.MetricTypeWaist:
		u = p.Length
	case entries.MetricTypeGlucose:
		u = p.Glucose
	}
	if u == "" {
		return StorageUnit(t)
	}
	return u
}

// WithUnit returns a copy of the preference that enters values of type t in unit.
// Types without a display unit choice are not affected.
func (p Preference) WithUnit(t entries.MetricType, unit Unit) Preference {
	switch t {
	case entries.MetricTypeWeight:
		p.Weight = unit
	case entries.MetricTypeWaist:
		p.Length = unit
	case entries.MetricTypeGlucose:
		p.Glucose = unit
	}
	return p
}

// ToStorage converts a value expressed in unit to the storage unit of the metric type.
func ToStorage(t entries.MetricType, value float64, unit Unit) (float64, error) {
	storage := StorageUnit(t)
	if unit == "" || unit == storage {
		return value, nil
	}
	switch {
	case t == entries.MetricTypeWeight && unit == Kilograms:
		return value / KilogramsPerPound, nil
	case t == entries.MetricTypeWaist && unit == Centimeter:
		return value / CentimetersPerInch, nil
	case t == entries.MetricTypeGlucose && unit == MmolL:
		return value * MgdLPerMmolL, nil
	}
	return 0, fmt.Errorf("unit %s is not valid for %s", unit, t)
}

// FromStorage converts a stored value to unit.
func FromStorage(t entries.MetricType, value float64, unit Unit) (float64, error) {
	storage := StorageUnit(t)
	if unit == "" || unit == storage {
		return value, nil
	}
	switch {
	case t == entries.MetricTypeWeight && unit == Kilograms:
		return value * KilogramsPerPound, nil
	case t == entries.MetricTypeWaist && unit == Centimeter:
		return value * CentimetersPerInch, nil
	case t == entries.MetricTypeGlucose && unit == MmolL:
		return value / MgdLPerMmolL, nil
	}
	return 0, fmt.Errorf("unit %s is not valid for %s", unit, t)
}

func PoundsToKilograms(lbs float64) float64 {
	return lbs * KilogramsPerPound
}

func KilogramsToPounds(kg float64) float64 {
	return kg / KilogramsPerPound
}

func InchesToCentimeters(in float64) float64 {
	return in * CentimetersPerInch
}

func CentimetersToInches(cm float64) float64 {
	return cm / CentimetersPerInch
}

func MmolLToMgdL(mmol float64) float64 {
	return mmol * MgdLPerMmolL
}

func MgdLToMmolL(mgdl float64) float64 {
	return mgdl / MgdLPerMmolL
}

// RoundHalfUp rounds to the given number of decimals, with halves rounded towards
// positive infinity.
func RoundHalfUp(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	pow := math.Pow(10, float64(decimals))
	return math.Floor(value*pow+0.5) / pow
}

func FormatWeight(value float64) string {
	return fmt.Sprintf("%.1f", RoundHalfUp(value, 1))
}

func FormatLength(value float64) string {
	return fmt.Sprintf("%.1f", RoundHalfUp(value, 1))
}

// FormatGlucose prints mg/dL as an integer and mmol/L with one decimal.
func FormatGlucose(value float64, unit Unit) string {
	if unit == MmolL {
		return fmt.Sprintf("%.1f", RoundHalfUp(value, 1))
	}
	return fmt.Sprintf("%.0f", RoundHalfUp(value, 0))
}
