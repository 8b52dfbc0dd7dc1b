// Package flags evaluates clinical threshold rules over rolling windows of local days.
// Flags are derived on every query and never persisted.
package flags

import (
	"sort"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
)

type Type string

const (
	TypeHighGlucose   Type = "high_glucose"
	TypeElevatedBP    Type = "elevated_bp"
	TypeLowKetones    Type = "low_ketones"
	TypeMissedLogging Type = "missed_logging"
)

var AllTypes = []Type{TypeHighGlucose, TypeElevatedBP, TypeLowKetones, TypeMissedLogging}

var acronyms = map[string]string{"bp": "BP"}

// Label is the display name of a flag type, e.g. "High Glucose".
func (t Type) Label() string {
	words := strings.Split(string(t), "_")
	title := cases.Title(language.English)
	for i, w := range words {
		if a, ok := acronyms[w]; ok {
			words[i] = a
		} else {
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, " ")
}

type Flag struct {
	Type          Type       `json:"type"`
	Label         string     `json:"label"`
	ParticipantId string     `json:"participantId"`
	Evidence      string     `json:"evidence"`
	Days          []string   `json:"days,omitempty"`
	LastLogDate   *time.Time `json:"lastLogDate,omitempty"`
}

type Detector struct {
	config  Config
	printer *message.Printer
}

func NewDetector(config Config) *Detector {
	return &Detector{
		config:  config,
		printer: message.NewPrinter(language.English),
	}
}

func (d *Detector) Config() Config {
	return d.config
}

// Detect evaluates every rule for one participant. Backfilled entries are evaluated
// like any other entry.
func (d *Detector) Detect(user entries.User, metrics []entries.MetricEntry, foods []entries.FoodEntry, cal localdate.Calendar, now time.Time) []Flag {
	result := make([]Flag, 0)
	if f := d.highGlucose(user, metrics, cal, now); f != nil {
		result = append(result, *f)
	}
	if f := d.elevatedBloodPressure(user, metrics, cal, now); f != nil {
		result = append(result, *f)
	}
	if f := d.lowKetones(user, metrics, cal, now); f != nil {
		result = append(result, *f)
	}
	if f := d.missedLogging(user, metrics, foods, cal, now); f != nil {
		result = append(result, *f)
	}
	return result
}

// qualifyingDays collects the distinct local days within the last windowDays days
// that have at least one reading matching the predicate, and the most recent such
// reading. Invalid payloads never qualify.
func qualifyingDays(metrics []entries.MetricEntry, t entries.MetricType, cal localdate.Calendar, now time.Time, windowDays int, match func(entries.MetricValue) bool) ([]string, *time.Time) {
	today := cal.Today(now)
	from := localdate.AddDays(today, -(windowDays - 1))

	days := mapset.NewThreadUnsafeSet[string]()
	var latest *time.Time
	for _, m := range metrics {
		if m.Type != t || !m.Value.IsValid() {
			continue
		}
		day := cal.DateKey(m.Timestamp)
		if !localdate.InRange(day, from, today) || !match(m.Value) {
			continue
		}
		days.Add(day)
		if latest == nil || m.Timestamp.After(*latest) {
			ts := m.Timestamp
			latest = &ts
		}
	}

	sorted := days.ToSlice()
	sort.Strings(sorted)
	return sorted, latest
}

func (d *Detector) highGlucose(user entries.User, metrics []entries.MetricEntry, cal localdate.Calendar, now time.Time) *Flag {
	threshold := d.config.HighGlucoseMgdL
	days, latest := qualifyingDays(metrics, entries.MetricTypeGlucose, cal, now, d.config.HighGlucoseWindowDays, func(v entries.MetricValue) bool {
		value, ok := v.Scalar()
		return ok && value >= threshold
	})
	if len(days) < d.config.HighGlucoseDays {
		return nil
	}
	return &Flag{
		Type:          TypeHighGlucose,
		Label:         TypeHighGlucose.Label(),
		ParticipantId: user.Id,
		Evidence:      d.printer.Sprintf("Glucose at or above %v mg/dL on %d of the last %d days", threshold, len(days), d.config.HighGlucoseWindowDays),
		Days:          days,
		LastLogDate:   latest,
	}
}

func (d *Detector) elevatedBloodPressure(user entries.User, metrics []entries.MetricEntry, cal localdate.Calendar, now time.Time) *Flag {
	systolicThreshold := d.config.ElevatedSystolic
	diastolicThreshold := d.config.ElevatedDiastolic
	days, latest := qualifyingDays(metrics, entries.MetricTypeBP, cal, now, d.config.ElevatedBPWindowDays, func(v entries.MetricValue) bool {
		systolic, diastolic, ok := v.BloodPressure()
		return ok && (systolic >= systolicThreshold || diastolic >= diastolicThreshold)
	})
	if len(days) < d.config.ElevatedBPDays {
		return nil
	}
	return &Flag{
		Type:          TypeElevatedBP,
		Label:         TypeElevatedBP.Label(),
		ParticipantId: user.Id,
		Evidence:      d.printer.Sprintf("Blood pressure at or above %v/%v mmHg on %d of the last %d days", systolicThreshold, diastolicThreshold, len(days), d.config.ElevatedBPWindowDays),
		Days:          days,
		LastLogDate:   latest,
	}
}

func (d *Detector) lowKetones(user entries.User, metrics []entries.MetricEntry, cal localdate.Calendar, now time.Time) *Flag {
	threshold := d.config.LowKetonesMmolL
	days, latest := qualifyingDays(metrics, entries.MetricTypeKetones, cal, now, d.config.LowKetonesWindowDays, func(v entries.MetricValue) bool {
		value, ok := v.Scalar()
		return ok && value < threshold
	})
	if len(days) < d.config.LowKetonesDays {
		return nil
	}
	return &Flag{
		Type:          TypeLowKetones,
		Label:         TypeLowKetones.Label(),
		ParticipantId: user.Id,
		Evidence:      d.printer.Sprintf("Ketones below %v mmol/L on %d of the last %d days", threshold, len(days), d.config.LowKetonesWindowDays),
		Days:          days,
		LastLogDate:   latest,
	}
}

func (d *Detector) missedLogging(user entries.User, metrics []entries.MetricEntry, foods []entries.FoodEntry, cal localdate.Calendar, now time.Time) *Flag {
	latest := LastLog(metrics, foods, now)
	today := cal.Today(now)

	flag := &Flag{
		Type:          TypeMissedLogging,
		Label:         TypeMissedLogging.Label(),
		ParticipantId: user.Id,
		LastLogDate:   latest,
	}

	if latest != nil {
		daysSince := localdate.DaysBetween(cal.DateKey(*latest), today)
		if daysSince < d.config.MissedLoggingDays {
			return nil
		}
		flag.Evidence = d.printer.Sprintf("No metric or food logs in %d days", daysSince)
		return flag
	}

	// Without an account creation date there is nothing to measure the gap against.
	if user.CreatedAt.IsZero() {
		return nil
	}
	daysSince := localdate.DaysBetween(cal.DateKey(user.CreatedAt), today)
	if daysSince < d.config.MissedLoggingDays {
		return nil
	}
	flag.Evidence = d.printer.Sprintf("No logs since the account was created %d days ago", daysSince)
	return flag
}

// LastLog is the most recent metric or food entry at or before now.
func LastLog(metrics []entries.MetricEntry, foods []entries.FoodEntry, now time.Time) *time.Time {
	var latest *time.Time
	consider := func(ts time.Time) {
		if ts.After(now) {
			return
		}
		if latest == nil || ts.After(*latest) {
			t := ts
			latest = &t
		}
	}
	for _, m := range metrics {
		consider(m.Timestamp)
	}
	for _, f := range foods {
		consider(f.Timestamp)
	}
	return latest
}
