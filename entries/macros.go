package entries

import (
	"github.com/mitchellh/mapstructure"

	"github.com/metabolic-health/coach/pointer"
)

// Macros is the resolved nutrition estimate of a meal. Nil fields were not present
// in the winning source.
type Macros struct {
	ProteinG *float64 `mapstructure:"protein" json:"protein,omitempty"`
	CarbsG   *float64 `mapstructure:"carbs" json:"carbs,omitempty"`
	FatG     *float64 `mapstructure:"fat" json:"fat,omitempty"`
	Calories *float64 `mapstructure:"calories" json:"calories,omitempty"`
	FiberG   *float64 `mapstructure:"fiber" json:"fiber,omitempty"`
}

func (m Macros) Protein() float64 {
	return pointer.Default(m.ProteinG, 0)
}

func (m Macros) Carbs() float64 {
	return pointer.Default(m.CarbsG, 0)
}

func (m Macros) Fat() float64 {
	return pointer.Default(m.FatG, 0)
}

func (m Macros) Kcal() float64 {
	return pointer.Default(m.Calories, 0)
}

func (m Macros) Fiber() float64 {
	return pointer.Default(m.FiberG, 0)
}

// MacroSource selects the object that macros are read from. The order is
// corrections.macros, corrections, aiOutput.macros, aiOutput. A source counts as
// present when it is non-nil, even if it is empty, so a human correction always
// shadows the machine estimate.
func MacroSource(corrections, aiOutput map[string]interface{}) map[string]interface{} {
	for _, candidate := range []map[string]interface{}{corrections, aiOutput} {
		if candidate == nil {
			continue
		}
		if nested, ok := candidate["macros"]; ok && nested != nil {
			if m, ok := asMap(nested); ok {
				return m
			}
			return map[string]interface{}{}
		}
		return candidate
	}
	return map[string]interface{}{}
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	default:
		out := map[string]interface{}{}
		if err := mapstructure.Decode(v, &out); err != nil {
			return nil, false
		}
		return out, true
	}
}

// ResolveMacros is the only place correction precedence is decided. Values that
// cannot be decoded are dropped individually rather than failing the meal.
func ResolveMacros(corrections, aiOutput map[string]interface{}) Macros {
	source := MacroSource(corrections, aiOutput)

	var macros Macros
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &macros,
	})
	if err != nil {
		return Macros{}
	}
	if err := decoder.Decode(source); err == nil {
		return macros
	}

	// Retry field by field so one bad value does not discard the others.
	macros = Macros{}
	for key, dst := range map[string]**float64{
		"protein":  &macros.ProteinG,
		"carbs":    &macros.CarbsG,
		"fat":      &macros.FatG,
		"calories": &macros.Calories,
		"fiber":    &macros.FiberG,
	} {
		raw, ok := source[key]
		if !ok || raw == nil {
			continue
		}
		var v float64
		if err := mapstructure.WeakDecode(raw, &v); err == nil {
			*dst = &v
		}
	}
	return macros
}
