// Package macros compares average daily protein and carbohydrate intake with the
// personal targets of participants.
//
// Per participant compliance divides by the days that have food entries. Cohort
// range averages divide by the full length of the range.
package macros

import (
	"math"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/pointer"
)

const (
	DefaultWindowDays = 7

	ProteinTolerance = 0.10
	CarbsCeiling     = 1.10

	epsilon = 1e-9
)

type Compliance struct {
	ParticipantId string `json:"participantId"`
	Eligible      bool   `json:"eligible"`
	DaysWithFood  int    `json:"daysWithFood"`
	FoodEntries   int    `json:"foodEntries"`
	WindowDays    int    `json:"windowDays"`

	AvgDailyProtein  float64 `json:"avgDailyProtein"`
	AvgDailyCarbs    float64 `json:"avgDailyCarbs"`
	AvgDailyFat      float64 `json:"avgDailyFat"`
	AvgDailyCalories float64 `json:"avgDailyCalories"`

	ProteinTarget           *float64 `json:"proteinTarget,omitempty"`
	ProteinDeviationPercent *float64 `json:"proteinDeviationPercent,omitempty"`
	MeetingProtein          *bool    `json:"meetingProtein,omitempty"`

	CarbsTarget     *float64 `json:"carbsTarget,omitempty"`
	CarbsOverTarget *bool    `json:"carbsOverTarget,omitempty"`
}

// MeetsProtein reports whether the average is within ±10% of the target, inclusive.
func MeetsProtein(avg, target float64) bool {
	if target <= 0 {
		return false
	}
	return math.Abs(avg-target)/target <= ProteinTolerance+epsilon
}

// ExceedsCarbs reports whether the average is strictly above 110% of the target.
func ExceedsCarbs(avg, target float64) bool {
	if target <= 0 {
		return false
	}
	return avg > target*CarbsCeiling+epsilon
}

func windowFoods(foods []entries.FoodEntry, cal localdate.Calendar, from, to string) ([]entries.FoodEntry, mapset.Set[string]) {
	days := mapset.NewThreadUnsafeSet[string]()
	out := make([]entries.FoodEntry, 0, len(foods))
	for _, f := range foods {
		day := cal.DateKey(f.Timestamp)
		if !localdate.InRange(day, from, to) {
			continue
		}
		days.Add(day)
		out = append(out, f)
	}
	return out, days
}

type totals struct {
	protein, carbs, fat, calories float64
}

func sum(foods []entries.FoodEntry) totals {
	t := totals{}
	for _, f := range foods {
		m := f.Macros()
		t.protein += m.Protein()
		t.carbs += m.Carbs()
		t.fat += m.Fat()
		t.calories += m.Kcal()
	}
	return t
}

// Evaluate computes compliance over the last windowDays local days. Repeated meals
// are summed as logged. A participant without a positive protein target or without
// food entries in the window is not eligible and is left out of cohort percentages.
func Evaluate(userId string, foods []entries.FoodEntry, target *entries.MacroTarget, cal localdate.Calendar, now time.Time, windowDays int) Compliance {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	today := cal.Today(now)
	from := localdate.AddDays(today, -(windowDays - 1))

	inWindow, days := windowFoods(foods, cal, from, today)
	result := Compliance{
		ParticipantId: userId,
		DaysWithFood:  days.Cardinality(),
		FoodEntries:   len(inWindow),
		WindowDays:    windowDays,
	}

	if result.DaysWithFood > 0 {
		t := sum(inWindow)
		div := float64(result.DaysWithFood)
		result.AvgDailyProtein = t.protein / div
		result.AvgDailyCarbs = t.carbs / div
		result.AvgDailyFat = t.fat / div
		result.AvgDailyCalories = t.calories / div
	}

	if target == nil || result.DaysWithFood == 0 {
		return result
	}

	if target.ProteinG != nil && *target.ProteinG > 0 {
		proteinTarget := *target.ProteinG
		result.Eligible = true
		result.ProteinTarget = pointer.FromAny(proteinTarget)
		result.ProteinDeviationPercent = pointer.FromAny((result.AvgDailyProtein - proteinTarget) / proteinTarget * 100)
		result.MeetingProtein = pointer.FromAny(MeetsProtein(result.AvgDailyProtein, proteinTarget))
	}

	if target.CarbsG != nil && *target.CarbsG > 0 {
		result.CarbsTarget = pointer.FromAny(*target.CarbsG)
		result.CarbsOverTarget = pointer.FromAny(ExceedsCarbs(result.AvgDailyCarbs, *target.CarbsG))
	}

	return result
}

type CohortCompliance struct {
	Participants          int     `json:"participants"`
	Eligible              int     `json:"eligible"`
	MeetingProtein        int     `json:"meetingProtein"`
	PercentMeetingProtein float64 `json:"percentMeetingProtein"`
	CarbsEvaluated        int     `json:"carbsEvaluated"`
	CarbsOverTarget       int     `json:"carbsOverTarget"`
}

// Cohort aggregates per participant compliance. Ineligible participants count
// towards Participants only.
func Cohort(results []Compliance) CohortCompliance {
	out := CohortCompliance{Participants: len(results)}
	for _, r := range results {
		if r.Eligible {
			out.Eligible++
			if r.MeetingProtein != nil && *r.MeetingProtein {
				out.MeetingProtein++
			}
		}
		if r.CarbsOverTarget != nil {
			out.CarbsEvaluated++
			if *r.CarbsOverTarget {
				out.CarbsOverTarget++
			}
		}
	}
	if out.Eligible > 0 {
		out.PercentMeetingProtein = math.Floor(float64(out.MeetingProtein)/float64(out.Eligible)*1000+0.5) / 10
	}
	return out
}

type RangeAverage struct {
	From             string  `json:"from"`
	To               string  `json:"to"`
	RangeDays        int     `json:"rangeDays"`
	FoodEntries      int     `json:"foodEntries"`
	AvgDailyProtein  float64 `json:"avgDailyProtein"`
	AvgDailyCarbs    float64 `json:"avgDailyCarbs"`
	AvgDailyFat      float64 `json:"avgDailyFat"`
	AvgDailyCalories float64 `json:"avgDailyCalories"`
}

// RangeAverages divides the intake of the range by its full length in days, whether
// or not food was logged on each day. Use Evaluate for per participant fairness.
func RangeAverages(foods []entries.FoodEntry, cal localdate.Calendar, from, to string) RangeAverage {
	out := RangeAverage{From: from, To: to}
	rangeDays := localdate.DaysBetween(from, to) + 1
	if rangeDays <= 0 {
		return out
	}
	out.RangeDays = rangeDays

	inRange, _ := windowFoods(foods, cal, from, to)
	out.FoodEntries = len(inRange)
	t := sum(inRange)
	div := float64(rangeDays)
	out.AvgDailyProtein = t.protein / div
	out.AvgDailyCarbs = t.carbs / div
	out.AvgDailyFat = t.fat / div
	out.AvgDailyCalories = t.calories / div
	return out
}

// PerParticipant divides the daily averages evenly between n participants.
func (r RangeAverage) PerParticipant(n int) RangeAverage {
	if n <= 0 {
		return r
	}
	div := float64(n)
	r.AvgDailyProtein /= div
	r.AvgDailyCarbs /= div
	r.AvgDailyFat /= div
	r.AvgDailyCalories /= div
	return r
}
