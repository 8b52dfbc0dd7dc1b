package outcomes

import (
	"sort"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/units"
)

type WeekTrend struct {
	WeekStart       string   `json:"weekStart"`
	AvgWeight       *float64 `json:"avgWeight"`
	AvgSystolic     *float64 `json:"avgSystolic"`
	AvgGlucose      *float64 `json:"avgGlucose"`
	WeightReadings  int      `json:"weightReadings"`
	BPReadings      int      `json:"bpReadings"`
	GlucoseReadings int      `json:"glucoseReadings"`
	FoodLogs        int      `json:"foodLogs"`
}

type accumulator struct {
	sum   float64
	count int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.count++
}

// average is nil for a week without readings.
func (a accumulator) average() *float64 {
	if a.count == 0 {
		return nil
	}
	v := units.RoundHalfUp(a.sum/float64(a.count), 1)
	return &v
}

type week struct {
	weight, systolic, glucose accumulator
	foods                     int
}

// WeeklyTrends buckets every entry into the ISO week of its local date, Monday
// first, and returns the weeks that have any entry in chronological order.
func WeeklyTrends(series []Series) []WeekTrend {
	weeks := map[string]*week{}
	bucket := func(key string) *week {
		w, ok := weeks[key]
		if !ok {
			w = &week{}
			weeks[key] = w
		}
		return w
	}

	for _, s := range series {
		for _, m := range s.Metrics {
			var acc *accumulator
			w := bucket(s.Calendar.WeekStart(m.Timestamp))
			switch m.Type {
			case entries.MetricTypeWeight:
				acc = &w.weight
			case entries.MetricTypeBP:
				acc = &w.systolic
			case entries.MetricTypeGlucose:
				acc = &w.glucose
			default:
				continue
			}
			acc.add(m.Value.Number())
		}
		for _, f := range s.Foods {
			bucket(s.Calendar.WeekStart(f.Timestamp)).foods++
		}
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]WeekTrend, 0, len(keys))
	for _, k := range keys {
		w := weeks[k]
		result = append(result, WeekTrend{
			WeekStart:       k,
			AvgWeight:       w.weight.average(),
			AvgSystolic:     w.systolic.average(),
			AvgGlucose:      w.glucose.average(),
			WeightReadings:  w.weight.count,
			BPReadings:      w.systolic.count,
			GlucoseReadings: w.glucose.count,
			FoodLogs:        w.foods,
		})
	}
	return result
}

// LastWeeks keeps the trends of the n ISO weeks ending with the week of today.
func LastWeeks(trends []WeekTrend, today string, n int) []WeekTrend {
	if n <= 0 {
		return trends
	}
	currentWeek := localdate.WeekStartOfKey(today)
	firstWeek := localdate.AddDays(currentWeek, -7*(n-1))
	result := make([]WeekTrend, 0, n)
	for _, t := range trends {
		if localdate.InRange(t.WeekStart, firstWeek, currentWeek) {
			result = append(result, t)
		}
	}
	return result
}
