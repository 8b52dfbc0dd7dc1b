package adherence

import (
	"math"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
)

type Pattern string

const (
	PatternDaily    Pattern = "daily"
	PatternWeekly   Pattern = "weekly"
	PatternSporadic Pattern = "sporadic"
)

const (
	DailyMaxAverageGapDays  = 2.0
	WeeklyMaxAverageGapDays = 10.0

	DefaultConsistencyWindowWeeks = 4

	MetricStreak      = "streak"
	MetricConsistency = "consistency"
)

type Consistency struct {
	Pattern            Pattern  `json:"pattern"`
	AverageGapDays     *float64 `json:"averageGapDays,omitempty"`
	WeeksWithLogs      int      `json:"weeksWithLogs"`
	TotalWeeks         int      `json:"totalWeeks"`
	ConsistencyPercent int      `json:"consistencyPercent"`
	Streak             Streak   `json:"streak"`
	RecommendedMetric  string   `json:"recommendedMetric"`
}

// ClassifyPattern derives the logging cadence from the gaps between consecutive
// distinct log days. Fewer than two log days cannot show a cadence and are sporadic.
func ClassifyPattern(days []string) (Pattern, *float64) {
	if len(days) < 2 {
		return PatternSporadic, nil
	}
	total := 0
	for i := 1; i < len(days); i++ {
		total += localdate.DaysBetween(days[i-1], days[i])
	}
	avg := float64(total) / float64(len(days)-1)

	switch {
	case avg <= DailyMaxAverageGapDays:
		return PatternDaily, &avg
	case avg <= WeeklyMaxAverageGapDays:
		return PatternWeekly, &avg
	default:
		return PatternSporadic, &avg
	}
}

// CalculateConsistency reports the share of the last windowWeeks ISO weeks, the
// current one included, that contain at least one log. Daily loggers are shown
// their streak, everyone else the weekly consistency.
func CalculateConsistency(metrics []entries.MetricEntry, foods []entries.FoodEntry, cal localdate.Calendar, now time.Time, windowWeeks int) Consistency {
	if windowWeeks <= 0 {
		windowWeeks = DefaultConsistencyWindowWeeks
	}

	today := cal.Today(now)
	days := sortedDays(LogDays(metrics, foods, cal), today)

	result := Consistency{
		TotalWeeks: windowWeeks,
		Streak:     CalculateStreak(metrics, foods, cal, now),
	}
	result.Pattern, result.AverageGapDays = ClassifyPattern(days)

	currentWeek := localdate.WeekStartOfKey(today)
	firstWeek := localdate.AddDays(currentWeek, -7*(windowWeeks-1))
	weeks := mapset.NewThreadUnsafeSet[string]()
	for _, day := range days {
		week := localdate.WeekStartOfKey(day)
		if localdate.InRange(week, firstWeek, currentWeek) {
			weeks.Add(week)
		}
	}

	result.WeeksWithLogs = weeks.Cardinality()
	if result.WeeksWithLogs > windowWeeks {
		result.WeeksWithLogs = windowWeeks
	}
	result.ConsistencyPercent = int(math.Floor(float64(result.WeeksWithLogs)/float64(windowWeeks)*100 + 0.5))

	if result.Pattern == PatternDaily {
		result.RecommendedMetric = MetricStreak
	} else {
		result.RecommendedMetric = MetricConsistency
	}
	return result
}
