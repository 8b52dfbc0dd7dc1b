package entries

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type ValueKind int

const (
	ValueKindInvalid ValueKind = iota
	ValueKindScalar
	ValueKindBloodPressure
)

// MetricValue is the payload of a metric entry. Single value metrics carry a scalar,
// blood pressure carries a systolic/diastolic pair. A payload that could not be
// decoded is kept as an invalid value whose accessors report 0.
type MetricValue struct {
	kind      ValueKind
	scalar    float64
	systolic  float64
	diastolic float64
}

func ScalarValue(v float64) MetricValue {
	return MetricValue{kind: ValueKindScalar, scalar: v}
}

func BloodPressureValue(systolic, diastolic float64) MetricValue {
	return MetricValue{kind: ValueKindBloodPressure, systolic: systolic, diastolic: diastolic}
}

func InvalidValue() MetricValue {
	return MetricValue{}
}

func (m MetricValue) Kind() ValueKind {
	return m.kind
}

func (m MetricValue) IsValid() bool {
	return m.kind != ValueKindInvalid
}

// Scalar returns the value of a single value metric.
func (m MetricValue) Scalar() (float64, bool) {
	if m.kind != ValueKindScalar {
		return 0, false
	}
	return m.scalar, true
}

func (m MetricValue) BloodPressure() (systolic float64, diastolic float64, ok bool) {
	if m.kind != ValueKindBloodPressure {
		return 0, 0, false
	}
	return m.systolic, m.diastolic, true
}

// Number returns the scalar, or the systolic reading for blood pressure, or 0.
func (m MetricValue) Number() float64 {
	switch m.kind {
	case ValueKindScalar:
		return m.scalar
	case ValueKindBloodPressure:
		return m.systolic
	default:
		return 0
	}
}

func (m MetricValue) Systolic() float64 {
	return m.systolic
}

func (m MetricValue) Diastolic() float64 {
	return m.diastolic
}

// Raw returns the valueJson representation of the payload.
func (m MetricValue) Raw() map[string]interface{} {
	switch m.kind {
	case ValueKindScalar:
		return map[string]interface{}{"value": m.scalar}
	case ValueKindBloodPressure:
		return map[string]interface{}{"systolic": m.systolic, "diastolic": m.diastolic}
	default:
		return map[string]interface{}{}
	}
}

// DeepCopy keeps the payload when entries are copied with mohae/deepcopy, which
// skips unexported fields.
func (m MetricValue) DeepCopy() interface{} {
	return m
}

func (m MetricValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Raw())
}

func (m *MetricValue) UnmarshalJSON(data []byte) error {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = InvalidValue()
		return nil
	}
	*m = parseAnyValue(raw)
	return nil
}

// DecodeNumber reads one payload field. Numbers and numeric strings are accepted;
// booleans, blank strings, containers and non finite numbers are not.
func DecodeNumber(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	case reflect.String:
		trimmed := strings.TrimSpace(reflect.ValueOf(v).String())
		if trimmed == "" {
			return 0, false
		}
		v = trimmed
	default:
		return 0, false
	}
	var out float64
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

// field reports whether key is present with a non null value.
func field(raw map[string]interface{}, key string) (interface{}, bool) {
	v, ok := raw[key]
	return v, ok && v != nil
}

// ParseMetricValue decodes a valueJson payload for the given metric type. Only the
// keys the type reads are decoded, other keys are ignored whatever they hold.
// Presence of a key decides which field is used, so a legitimate 0 is never treated
// as missing. Single value metrics read `value` and fall back to the legacy
// `fasting` key.
func ParseMetricValue(t MetricType, raw map[string]interface{}) MetricValue {
	if raw == nil {
		return InvalidValue()
	}
	if t == MetricTypeBP {
		s, sok := field(raw, "systolic")
		d, dok := field(raw, "diastolic")
		if !sok || !dok {
			return InvalidValue()
		}
		systolic, sok := DecodeNumber(s)
		diastolic, dok := DecodeNumber(d)
		if !sok || !dok {
			return InvalidValue()
		}
		return BloodPressureValue(systolic, diastolic)
	}

	v, ok := field(raw, "value")
	if !ok {
		if v, ok = field(raw, "fasting"); !ok {
			return InvalidValue()
		}
	}
	value, ok := DecodeNumber(v)
	if !ok {
		return InvalidValue()
	}
	return ScalarValue(value)
}

func parseAnyValue(raw map[string]interface{}) MetricValue {
	if _, ok := raw["systolic"]; ok {
		return ParseMetricValue(MetricTypeBP, raw)
	}
	return ParseMetricValue(MetricTypeGlucose, raw)
}
