// Package analytics assembles the coach and participant views from one snapshot of
// entries. The Engine performs no I/O and is handed the current time on every
// call. The Service fetches the snapshot.
//
// Timestamps are absolute instants. Local dates are computed with the participant's
// stored time zone, or with the deployment zone when the participant has none or an
// unknown one.
package analytics

import (
	"fmt"
	"time"

	"github.com/metabolic-health/coach/adherence"
	"github.com/metabolic-health/coach/config"
	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/flags"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/macros"
	"github.com/metabolic-health/coach/outcomes"
	"github.com/metabolic-health/coach/units"
)

// OutcomeTypes are the metrics outcome changes are reported for.
var OutcomeTypes = []entries.MetricType{
	entries.MetricTypeWeight,
	entries.MetricTypeWaist,
	entries.MetricTypeBP,
	entries.MetricTypeGlucose,
}

type Settings struct {
	AdherenceWindowDays    int
	ConsistencyWindowWeeks int
	MacroWindowDays        int
	OutcomePeriodDays      int
	TrendWeeks             int
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		AdherenceWindowDays:    cfg.AdherenceWindowDays,
		ConsistencyWindowWeeks: cfg.ConsistencyWindowWeeks,
		MacroWindowDays:        cfg.MacroWindowDays,
		OutcomePeriodDays:      cfg.OutcomePeriodDays,
		TrendWeeks:             cfg.TrendWeeks,
	}
}

type Engine struct {
	settings Settings
	resolver *localdate.Resolver
	detector *flags.Detector
}

func NewEngine(settings Settings, resolver *localdate.Resolver, detector *flags.Detector) *Engine {
	return &Engine{
		settings: settings,
		resolver: resolver,
		detector: detector,
	}
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// Thresholds are the flag thresholds the engine evaluates with.
func (e *Engine) Thresholds() flags.Config {
	return e.detector.Config()
}

func (e *Engine) calendar(user entries.User) localdate.Calendar {
	cal, _ := e.resolver.Calendar(user.Timezone)
	return cal
}

func (e *Engine) series(s *Snapshot) []outcomes.Series {
	result := make([]outcomes.Series, 0, len(s.Users()))
	for _, u := range s.Users() {
		result = append(result, outcomes.Series{
			ParticipantId: u.Id,
			Calendar:      e.calendar(u),
			Metrics:       s.Metrics(u.Id),
			Foods:         s.Foods(u.Id),
		})
	}
	return result
}

type ParticipantReport struct {
	ParticipantId string                       `json:"participantId"`
	CoachId       string                       `json:"coachId,omitempty"`
	Timezone      string                       `json:"timezone"`
	Today         string                       `json:"today"`
	Adherence     adherence.Score              `json:"adherence"`
	Consistency   adherence.Consistency        `json:"consistency"`
	Flags         []flags.Flag                 `json:"flags"`
	Macros        macros.Compliance            `json:"macros"`
	Outcomes      []outcomes.ParticipantChange `json:"outcomes"`
	Backfill      outcomes.BackfillSummary     `json:"backfill"`
	Trends        []outcomes.WeekTrend         `json:"trends"`
	LastLogDate   *time.Time                   `json:"lastLogDate,omitempty"`
}

func (e *Engine) ParticipantReport(s *Snapshot, userId string, now time.Time) (*ParticipantReport, error) {
	user, ok := s.User(userId)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entries.ErrNotFound, userId)
	}
	cal := e.calendar(user)
	metrics := s.Metrics(userId)
	foods := s.Foods(userId)

	report := &ParticipantReport{
		ParticipantId: user.Id,
		CoachId:       user.CoachId,
		Timezone:      cal.Location().String(),
		Today:         cal.Today(now),
		Adherence:     adherence.CalculateScoreForWindow(metrics, cal, now, e.settings.AdherenceWindowDays),
		Consistency:   adherence.CalculateConsistency(metrics, foods, cal, now, e.settings.ConsistencyWindowWeeks),
		Flags:         e.detector.Detect(user, metrics, foods, cal, now),
		Macros:        macros.Evaluate(user.Id, foods, s.Target(user.Id), cal, now, e.settings.MacroWindowDays),
		Outcomes:      make([]outcomes.ParticipantChange, 0, len(OutcomeTypes)),
		Backfill:      outcomes.Backfill(metrics),
		LastLogDate:   flags.LastLog(metrics, foods, now),
	}
	for _, t := range OutcomeTypes {
		report.Outcomes = append(report.Outcomes, outcomes.Change(user.Id, metrics, t))
	}

	series := []outcomes.Series{{ParticipantId: user.Id, Calendar: cal, Metrics: metrics, Foods: foods}}
	report.Trends = outcomes.LastWeeks(outcomes.WeeklyTrends(series), report.Today, e.settings.TrendWeeks)
	return report, nil
}

type ParticipantSummary struct {
	ParticipantId string           `json:"participantId"`
	CoachId       string           `json:"coachId,omitempty"`
	Adherence     adherence.Score  `json:"adherence"`
	Streak        adherence.Streak `json:"streak"`
	FlagTypes     []flags.Type     `json:"flagTypes"`
	LastLogDate   *time.Time       `json:"lastLogDate,omitempty"`
}

type Overview struct {
	ParticipantCount   int                     `json:"participantCount"`
	AverageAdherence   float64                 `json:"averageAdherence"`
	LoggedToday        int                     `json:"loggedToday"`
	FlagCounts         map[flags.Type]int      `json:"flagCounts"`
	Macros             macros.CohortCompliance `json:"macros"`
	DailyMacroAverages macros.RangeAverage     `json:"dailyMacroAverages"`
	Participants       []ParticipantSummary    `json:"participants"`
}

func emptyFlagCounts() map[flags.Type]int {
	counts := make(map[flags.Type]int, len(flags.AllTypes))
	for _, t := range flags.AllTypes {
		counts[t] = 0
	}
	return counts
}

// Overview is the coach dashboard. The cohort adherence is the mean of the
// participant scores, 0 for an empty cohort. Daily macro averages divide by the
// full window length and the participant count.
func (e *Engine) Overview(s *Snapshot, now time.Time) Overview {
	overview := Overview{
		ParticipantCount: len(s.Users()),
		FlagCounts:       emptyFlagCounts(),
		Participants:     make([]ParticipantSummary, 0, len(s.Users())),
	}

	compliance := make([]macros.Compliance, 0, len(s.Users()))
	adherenceSum := 0
	for _, u := range s.Users() {
		cal := e.calendar(u)
		metrics := s.Metrics(u.Id)
		foods := s.Foods(u.Id)

		summary := ParticipantSummary{
			ParticipantId: u.Id,
			CoachId:       u.CoachId,
			Adherence:     adherence.CalculateScoreForWindow(metrics, cal, now, e.settings.AdherenceWindowDays),
			Streak:        adherence.CalculateStreak(metrics, foods, cal, now),
			FlagTypes:     make([]flags.Type, 0),
			LastLogDate:   flags.LastLog(metrics, foods, now),
		}
		for _, f := range e.detector.Detect(u, metrics, foods, cal, now) {
			summary.FlagTypes = append(summary.FlagTypes, f.Type)
			overview.FlagCounts[f.Type]++
		}
		if summary.Streak.Current > 0 {
			overview.LoggedToday++
		}
		adherenceSum += summary.Adherence.Score
		compliance = append(compliance, macros.Evaluate(u.Id, foods, s.Target(u.Id), cal, now, e.settings.MacroWindowDays))
		overview.Participants = append(overview.Participants, summary)
	}

	if overview.ParticipantCount > 0 {
		overview.AverageAdherence = units.RoundHalfUp(float64(adherenceSum)/float64(overview.ParticipantCount), 1)
	}
	overview.Macros = macros.Cohort(compliance)
	overview.DailyMacroAverages = e.dashboardAverages(s, now, e.settings.MacroWindowDays)
	return overview
}

// dashboardAverages uses the deployment calendar for the range bounds.
func (e *Engine) dashboardAverages(s *Snapshot, now time.Time, days int) macros.RangeAverage {
	if days <= 0 {
		days = macros.DefaultWindowDays
	}
	cal := e.resolver.Default()
	today := cal.Today(now)
	from := localdate.AddDays(today, -(days - 1))
	return macros.RangeAverages(s.AllFoods(), cal, from, today).PerParticipant(len(s.Users()))
}

type FlagsReport struct {
	Counts map[flags.Type]int `json:"counts"`
	Flags  []flags.Flag       `json:"flags"`
}

func (e *Engine) Flags(s *Snapshot, now time.Time) FlagsReport {
	report := FlagsReport{
		Counts: emptyFlagCounts(),
		Flags:  make([]flags.Flag, 0),
	}
	for _, u := range s.Users() {
		for _, f := range e.detector.Detect(u, s.Metrics(u.Id), s.Foods(u.Id), e.calendar(u), now) {
			report.Counts[f.Type]++
			report.Flags = append(report.Flags, f)
		}
	}
	return report
}

type MacroReport struct {
	WindowDays    int                     `json:"windowDays"`
	Cohort        macros.CohortCompliance `json:"cohort"`
	DailyAverages macros.RangeAverage     `json:"dailyAverages"`
	Participants  []macros.Compliance     `json:"participants"`
}

func (e *Engine) Macros(s *Snapshot, now time.Time, days int) MacroReport {
	if days <= 0 {
		days = e.settings.MacroWindowDays
	}
	report := MacroReport{
		WindowDays:   days,
		Participants: make([]macros.Compliance, 0, len(s.Users())),
	}
	for _, u := range s.Users() {
		report.Participants = append(report.Participants, macros.Evaluate(u.Id, s.Foods(u.Id), s.Target(u.Id), e.calendar(u), now, days))
	}
	report.Cohort = macros.Cohort(report.Participants)
	report.DailyAverages = e.dashboardAverages(s, now, days)
	return report
}

type OutcomeMetric struct {
	Type    entries.MetricType        `json:"type"`
	Overall outcomes.CohortChange     `json:"overall"`
	Periods outcomes.PeriodComparison `json:"periods"`
}

type OutcomeReport struct {
	PeriodDays int                      `json:"periodDays"`
	Metrics    []OutcomeMetric          `json:"metrics"`
	Backfill   outcomes.BackfillSummary `json:"backfill"`
}

func (e *Engine) Outcomes(s *Snapshot, now time.Time, days int) OutcomeReport {
	if days <= 0 {
		days = e.settings.OutcomePeriodDays
	}
	series := e.series(s)
	report := OutcomeReport{
		PeriodDays: days,
		Metrics:    make([]OutcomeMetric, 0, len(OutcomeTypes)),
	}
	for _, t := range OutcomeTypes {
		report.Metrics = append(report.Metrics, OutcomeMetric{
			Type:    t,
			Overall: outcomes.Cohort(series, t),
			Periods: outcomes.ComparePeriods(series, t, now, days),
		})
	}
	for _, ser := range series {
		b := outcomes.Backfill(ser.Metrics)
		report.Backfill.BackfilledCount += b.BackfilledCount
		report.Backfill.RealTimeCount += b.RealTimeCount
	}
	return report
}

type TrendReport struct {
	Weeks  int                  `json:"weeks"`
	Trends []outcomes.WeekTrend `json:"trends"`
}

func (e *Engine) Trends(s *Snapshot, now time.Time, weeks int) TrendReport {
	if weeks <= 0 {
		weeks = e.settings.TrendWeeks
	}
	today := e.resolver.Default().Today(now)
	return TrendReport{
		Weeks:  weeks,
		Trends: outcomes.LastWeeks(outcomes.WeeklyTrends(e.series(s)), today, weeks),
	}
}

func (e *Engine) Consistency(s *Snapshot, userId string, now time.Time, weeks int) (*adherence.Consistency, error) {
	user, ok := s.User(userId)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entries.ErrNotFound, userId)
	}
	if weeks <= 0 {
		weeks = e.settings.ConsistencyWindowWeeks
	}
	result := adherence.CalculateConsistency(s.Metrics(userId), s.Foods(userId), e.calendar(user), now, weeks)
	return &result, nil
}
