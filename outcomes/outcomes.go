// Package outcomes measures how readings move between the first and the latest entry
// of a participant, across periods and per ISO week.
//
// Duplicate entries are not collapsed: every entry takes part in sorting, averages
// and counts as it was stored.
package outcomes

import (
	"sort"
	"time"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/units"
)

const (
	// LimitedDataParticipants is the qualifying participant count below which a
	// cohort result is marked as low confidence.
	LimitedDataParticipants = 5
	MinEntriesForChange     = 2

	DefaultPeriodDays = 30
)

// Series is the data of one participant together with the calendar their local
// dates are computed in.
type Series struct {
	ParticipantId string
	Calendar      localdate.Calendar
	Metrics       []entries.MetricEntry
	Foods         []entries.FoodEntry
}

type ParticipantChange struct {
	ParticipantId string             `json:"participantId"`
	Type          entries.MetricType `json:"type"`
	Entries       int                `json:"entries"`
	Qualifies     bool               `json:"qualifies"`
	Baseline      float64            `json:"baseline"`
	Current       float64            `json:"current"`
	Change        float64            `json:"change"`
	From          *time.Time         `json:"from,omitempty"`
	To            *time.Time         `json:"to,omitempty"`
}

// ofType returns the entries of type t in chronological order. Entries sharing a
// timestamp keep the order in which they were recorded.
func ofType(metrics []entries.MetricEntry, t entries.MetricType) []entries.MetricEntry {
	out := make([]entries.MetricEntry, 0)
	for _, m := range metrics {
		if m.Type == t {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Change computes latest minus earliest over the entries of type t, rounded to one
// decimal. Blood pressure is measured on the systolic reading. With fewer than two
// entries the change is 0 and the participant does not qualify.
func Change(participantId string, metrics []entries.MetricEntry, t entries.MetricType) ParticipantChange {
	series := ofType(metrics, t)
	result := ParticipantChange{
		ParticipantId: participantId,
		Type:          t,
		Entries:       len(series),
	}
	if len(series) < MinEntriesForChange {
		return result
	}

	first := series[0]
	last := series[len(series)-1]
	result.Qualifies = true
	result.Baseline = first.Value.Number()
	result.Current = last.Value.Number()
	result.Change = units.RoundHalfUp(result.Current-result.Baseline, 1)
	result.From = &first.Timestamp
	result.To = &last.Timestamp
	return result
}

type CohortChange struct {
	Type             entries.MetricType  `json:"type"`
	MeanChange       float64             `json:"meanChange"`
	ParticipantCount int                 `json:"participantCount"`
	LimitedData      bool                `json:"limitedData"`
	Participants     []ParticipantChange `json:"participants"`
}

// Cohort averages the change of the qualifying participants. An empty cohort has a
// mean change of 0 and is limited data.
func Cohort(series []Series, t entries.MetricType) CohortChange {
	result := CohortChange{
		Type:         t,
		Participants: make([]ParticipantChange, 0, len(series)),
	}
	sum := 0.0
	for _, s := range series {
		change := Change(s.ParticipantId, s.Metrics, t)
		result.Participants = append(result.Participants, change)
		if !change.Qualifies {
			continue
		}
		result.ParticipantCount++
		sum += change.Change
	}
	if result.ParticipantCount > 0 {
		result.MeanChange = units.RoundHalfUp(sum/float64(result.ParticipantCount), 1)
	}
	result.LimitedData = result.ParticipantCount < LimitedDataParticipants
	return result
}

type Period struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Cohort CohortChange `json:"cohort"`
}

type PeriodComparison struct {
	Type     entries.MetricType `json:"type"`
	Days     int                `json:"days"`
	Current  Period             `json:"current"`
	Previous Period             `json:"previous"`
}

// ComparePeriods evaluates the change over the last days local days and, separately,
// over the days immediately before them. The two periods never overlap.
func ComparePeriods(series []Series, t entries.MetricType, now time.Time, days int) PeriodComparison {
	if days <= 0 {
		days = DefaultPeriodDays
	}
	result := PeriodComparison{Type: t, Days: days}

	current := make([]Series, 0, len(series))
	previous := make([]Series, 0, len(series))
	for _, s := range series {
		today := s.Calendar.Today(now)
		currentFrom := localdate.AddDays(today, -(days - 1))
		previousTo := localdate.AddDays(currentFrom, -1)
		previousFrom := localdate.AddDays(previousTo, -(days - 1))

		current = append(current, s.between(currentFrom, today))
		previous = append(previous, s.between(previousFrom, previousTo))
	}

	result.Current.Cohort = Cohort(current, t)
	result.Previous.Cohort = Cohort(previous, t)

	// Reported bounds use the calendar of the first series.
	if len(series) > 0 {
		today := series[0].Calendar.Today(now)
		result.Current.From = localdate.AddDays(today, -(days - 1))
		result.Current.To = today
		result.Previous.To = localdate.AddDays(result.Current.From, -1)
		result.Previous.From = localdate.AddDays(result.Previous.To, -(days - 1))
	}
	return result
}

func (s Series) between(from, to string) Series {
	out := Series{
		ParticipantId: s.ParticipantId,
		Calendar:      s.Calendar,
		Metrics:       make([]entries.MetricEntry, 0),
		Foods:         make([]entries.FoodEntry, 0),
	}
	for _, m := range s.Metrics {
		if localdate.InRange(s.Calendar.DateKey(m.Timestamp), from, to) {
			out.Metrics = append(out.Metrics, m)
		}
	}
	for _, f := range s.Foods {
		if localdate.InRange(s.Calendar.DateKey(f.Timestamp), from, to) {
			out.Foods = append(out.Foods, f)
		}
	}
	return out
}

type BackfillSummary struct {
	BackfilledCount int `json:"backfilledCount"`
	RealTimeCount   int `json:"realTimeCount"`
}

// Backfill counts entries by how they were recorded. It is informational only;
// backfilled entries take part in every calculation.
func Backfill(metrics []entries.MetricEntry) BackfillSummary {
	result := BackfillSummary{}
	for _, m := range metrics {
		if m.IsBackfilled() {
			result.BackfilledCount++
		} else {
			result.RealTimeCount++
		}
	}
	return result
}
