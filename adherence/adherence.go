// Package adherence scores how completely and how regularly a participant logs.
package adherence

import (
	"math"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
)

const (
	DefaultWindowDays = 7
)

type Score struct {
	Score        int `json:"score"`
	DaysWithData int `json:"daysWithData"`
	WindowDays   int `json:"windowDays"`
}

// CalculateScore averages, over the days of the window that have at least one metric
// entry, the share of the canonical metric types logged that day. Days without any
// metric are left out of the average instead of counting as zero.
func CalculateScore(metrics []entries.MetricEntry, cal localdate.Calendar, now time.Time) Score {
	return CalculateScoreForWindow(metrics, cal, now, DefaultWindowDays)
}

func CalculateScoreForWindow(metrics []entries.MetricEntry, cal localdate.Calendar, now time.Time, windowDays int) Score {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	result := Score{WindowDays: windowDays}

	today := cal.Today(now)
	from := localdate.AddDays(today, -(windowDays - 1))

	typesByDay := map[string]mapset.Set[entries.MetricType]{}
	for _, m := range metrics {
		if !m.Type.IsValid() {
			continue
		}
		day := cal.DateKey(m.Timestamp)
		if !localdate.InRange(day, from, today) {
			continue
		}
		types, ok := typesByDay[day]
		if !ok {
			types = mapset.NewThreadUnsafeSet[entries.MetricType]()
			typesByDay[day] = types
		}
		types.Add(m.Type)
	}

	denominator := len(typesByDay)
	if denominator > windowDays {
		denominator = windowDays
	}
	result.DaysWithData = len(typesByDay)
	if denominator == 0 {
		return result
	}

	sum := 0.0
	for _, types := range typesByDay {
		sum += float64(types.Cardinality()) / float64(len(entries.CanonicalTypes))
	}

	score := int(math.Floor(sum/float64(denominator)*100 + 0.5))
	result.Score = clamp(score, 0, 100)
	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LogDays is the set of local dates with any metric or food entry.
func LogDays(metrics []entries.MetricEntry, foods []entries.FoodEntry, cal localdate.Calendar) mapset.Set[string] {
	days := mapset.NewThreadUnsafeSet[string]()
	for _, m := range metrics {
		days.Add(cal.DateKey(m.Timestamp))
	}
	for _, f := range foods {
		days.Add(cal.DateKey(f.Timestamp))
	}
	return days
}

type Streak struct {
	Current     int     `json:"current"`
	Longest     int     `json:"longest"`
	LastLogDate *string `json:"lastLogDate,omitempty"`
}

// CalculateStreak counts consecutive days with any log, walking back from today.
// Without a log today the current streak is 0 whatever happened before.
func CalculateStreak(metrics []entries.MetricEntry, foods []entries.FoodEntry, cal localdate.Calendar, now time.Time) Streak {
	days := LogDays(metrics, foods, cal)
	today := cal.Today(now)

	result := Streak{}
	for day := today; days.Contains(day); day = localdate.AddDays(day, -1) {
		result.Current++
	}

	sorted := sortedDays(days, today)
	if len(sorted) > 0 {
		last := sorted[len(sorted)-1]
		result.LastLogDate = &last
	}

	run := 0
	for i, day := range sorted {
		if i > 0 && localdate.DaysBetween(sorted[i-1], day) == 1 {
			run++
		} else {
			run = 1
		}
		if run > result.Longest {
			result.Longest = run
		}
	}
	return result
}

// sortedDays returns the days up to and including today in chronological order.
func sortedDays(days mapset.Set[string], today string) []string {
	out := make([]string, 0, days.Cardinality())
	for _, d := range days.ToSlice() {
		if d <= today {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}
