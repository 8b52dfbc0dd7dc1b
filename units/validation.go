package units

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/errors"
)

// Range is an inclusive physiologic range in storage units.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	WeightRange    = Range{Min: 20, Max: 1000}
	WaistRange     = Range{Min: 10, Max: 100}
	GlucoseRange   = Range{Min: 20, Max: 700}
	KetonesRange   = Range{Min: 0, Max: 20}
	SystolicRange  = Range{Min: 50, Max: 300}
	DiastolicRange = Range{Min: 30, Max: 200}
)

// MaxTimestampAgeYears is how far in the past a measurement may be dated.
const MaxTimestampAgeYears = 5

// Rejection is a validation failure with a reason that can be shown to the person
// who entered the value. It unwraps to errors.ConstraintViolation.
type Rejection struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (r *Rejection) Error() string {
	if r.Field == "" {
		return r.Reason
	}
	return fmt.Sprintf("%s: %s", r.Field, r.Reason)
}

func (r *Rejection) Unwrap() error {
	return errors.ConstraintViolation
}

func reject(field, format string, args ...interface{}) *Rejection {
	return &Rejection{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func ValueRange(t entries.MetricType) (Range, bool) {
	switch t {
	case entries.MetricTypeWeight:
		return WeightRange, true
	case entries.MetricTypeWaist:
		return WaistRange, true
	case entries.MetricTypeGlucose:
		return GlucoseRange, true
	case entries.MetricTypeKetones:
		return KetonesRange, true
	}
	return Range{}, false
}

// ValidateValue checks a payload in storage units against the range of its type.
// It returns nil or a *Rejection.
func ValidateValue(t entries.MetricType, value entries.MetricValue) error {
	if !t.IsValid() {
		return reject("type", "unknown metric type %q", t)
	}

	if t == entries.MetricTypeBP {
		systolic, diastolic, ok := value.BloodPressure()
		if !ok {
			return reject("value", "blood pressure requires systolic and diastolic values")
		}
		if !SystolicRange.Contains(systolic) {
			return reject("systolic", "systolic must be between %.0f and %.0f mmHg", SystolicRange.Min, SystolicRange.Max)
		}
		if !DiastolicRange.Contains(diastolic) {
			return reject("diastolic", "diastolic must be between %.0f and %.0f mmHg", DiastolicRange.Min, DiastolicRange.Max)
		}
		if systolic <= diastolic {
			return reject("value", "systolic must be greater than diastolic")
		}
		return nil
	}

	v, ok := value.Scalar()
	if !ok {
		return reject("value", "%s requires a single numeric value", t)
	}
	r, _ := ValueRange(t)
	if !r.Contains(v) {
		return reject("value", "%s must be between %g and %g %s", t, r.Min, r.Max, StorageUnit(t))
	}
	return nil
}

// ValidateTimestamp rejects measurements dated after now or more than five years ago.
func ValidateTimestamp(ts time.Time, now time.Time) error {
	if ts.IsZero() {
		return reject("timestamp", "timestamp is required")
	}
	if ts.After(now) {
		return reject("timestamp", "timestamp cannot be in the future")
	}
	if ts.Before(now.AddDate(-MaxTimestampAgeYears, 0, 0)) {
		return reject("timestamp", "timestamp cannot be more than %d years in the past", MaxTimestampAgeYears)
	}
	return nil
}

// Normalized is a value converted to storage units.
type Normalized struct {
	Type    entries.MetricType  `json:"type"`
	Value   float64             `json:"normalizedValue"`
	RawUnit Unit                `json:"rawUnit"`
	Payload entries.MetricValue `json:"valueJson"`
}

type bloodPressureInput struct {
	Systolic  interface{} `mapstructure:"systolic"`
	Diastolic interface{} `mapstructure:"diastolic"`
}

type scalarInput struct {
	Value interface{} `mapstructure:"value"`
}

// Normalize converts a raw value entered in the participant's preferred unit into
// its storage representation. raw is a number for single value metrics and an
// object with systolic and diastolic for blood pressure. Range checks are left to
// ValidateValue.
func Normalize(t entries.MetricType, raw interface{}, pref Preference) (*Normalized, error) {
	if !t.IsValid() {
		return nil, reject("type", "unknown metric type %q", t)
	}

	if t == entries.MetricTypeBP {
		if _, isObject := raw.(map[string]interface{}); !isObject {
			return nil, reject("value", "blood pressure requires an object with systolic and diastolic")
		}
		var input bloodPressureInput
		if err := mapstructure.Decode(raw, &input); err != nil {
			return nil, reject("value", "blood pressure requires an object with systolic and diastolic")
		}
		systolic, sok := entries.DecodeNumber(input.Systolic)
		diastolic, dok := entries.DecodeNumber(input.Diastolic)
		if !sok || !dok {
			return nil, reject("value", "blood pressure requires an object with systolic and diastolic")
		}
		return &Normalized{
			Type:    t,
			Value:   systolic,
			RawUnit: MmHg,
			Payload: entries.BloodPressureValue(systolic, diastolic),
		}, nil
	}

	value, err := scalarFromRaw(raw)
	if err != nil {
		return nil, reject("value", "%s requires a numeric value", t)
	}

	unit := pref.PreferredUnit(t)
	stored, err := ToStorage(t, value, unit)
	if err != nil {
		return nil, reject("unit", "%s", err.Error())
	}

	return &Normalized{
		Type:    t,
		Value:   stored,
		RawUnit: unit,
		Payload: entries.ScalarValue(stored),
	}, nil
}

func scalarFromRaw(raw interface{}) (float64, error) {
	if m, ok := raw.(map[string]interface{}); ok {
		var input scalarInput
		if err := mapstructure.Decode(m, &input); err != nil {
			return 0, err
		}
		raw = input.Value
	}
	value, ok := entries.DecodeNumber(raw)
	if !ok {
		return 0, fmt.Errorf("value is not a number")
	}
	return value, nil
}

// Row is one measurement of an import batch.
type Row struct {
	Type      entries.MetricType `json:"type"`
	Value     interface{}        `json:"value"`
	Timestamp time.Time          `json:"timestamp"`
}

type RowResult struct {
	Index      int         `json:"index"`
	Normalized *Normalized `json:"normalized,omitempty"`
	Rejection  *Rejection  `json:"rejection,omitempty"`
}

func (r RowResult) Valid() bool {
	return r.Rejection == nil
}

// Check runs normalization, range and timestamp validation for one row.
func Check(row Row, pref Preference, now time.Time) (*Normalized, error) {
	normalized, err := Normalize(row.Type, row.Value, pref)
	if err != nil {
		return nil, err
	}
	if err := ValidateValue(row.Type, normalized.Payload); err != nil {
		return nil, err
	}
	if err := ValidateTimestamp(row.Timestamp, now); err != nil {
		return nil, err
	}
	return normalized, nil
}

// ValidateRows checks every row independently; a rejected row never stops the batch.
func ValidateRows(rows []Row, pref Preference, now time.Time) []RowResult {
	results := make([]RowResult, 0, len(rows))
	for i, row := range rows {
		result := RowResult{Index: i}
		normalized, err := Check(row, pref, now)
		if err != nil {
			rejection, ok := err.(*Rejection)
			if !ok {
				rejection = &Rejection{Reason: err.Error()}
			}
			result.Rejection = rejection
		} else {
			result.Normalized = normalized
		}
		results = append(results, result)
	}
	return results
}
