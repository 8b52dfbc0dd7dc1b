package entries

import (
	"context"
	"fmt"
	"time"

	"github.com/metabolic-health/coach/errors"
)

var (
	ErrNotFound = fmt.Errorf("participant %w", errors.NotFound)
)

type MetricType string

const (
	MetricTypeGlucose MetricType = "GLUCOSE"
	MetricTypeBP      MetricType = "BP"
	MetricTypeWeight  MetricType = "WEIGHT"
	MetricTypeWaist   MetricType = "WAIST"
	MetricTypeKetones MetricType = "KETONES"
)

// CanonicalTypes are the five metric types a participant is expected to log every day.
var CanonicalTypes = []MetricType{
	MetricTypeGlucose,
	MetricTypeBP,
	MetricTypeWeight,
	MetricTypeWaist,
	MetricTypeKetones,
}

func (t MetricType) IsValid() bool {
	for _, c := range CanonicalTypes {
		if c == t {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceManual Source = "manual"
	SourceImport Source = "import"
)

// MetricEntry is one observation of one metric type for one participant.
// Timestamp is the event time, CreatedAt the time the record was persisted.
type MetricEntry struct {
	Id        string      `json:"id"`
	UserId    string      `json:"userId"`
	Type      MetricType  `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	CreatedAt time.Time   `json:"createdAt"`
	Value     MetricValue `json:"value"`
	Source    Source      `json:"source"`
}

// FoodEntry is one meal record. UserCorrections always wins over AiOutput, see ResolveMacros.
type FoodEntry struct {
	Id              string                 `json:"id"`
	UserId          string                 `json:"userId"`
	Timestamp       time.Time              `json:"timestamp"`
	AiOutput        map[string]interface{} `json:"aiOutputJson,omitempty"`
	UserCorrections map[string]interface{} `json:"userCorrectionsJson,omitempty"`
}

func (f FoodEntry) Macros() Macros {
	return ResolveMacros(f.UserCorrections, f.AiOutput)
}

// MacroTarget is the nutrition goal of a participant. Nil fields are not set and
// must be excluded from compliance calculations rather than treated as zero.
type MacroTarget struct {
	UserId   string   `json:"userId" bson:"userId"`
	ProteinG *float64 `json:"proteinG,omitempty" bson:"proteinG,omitempty"`
	CarbsG   *float64 `json:"carbsG,omitempty" bson:"carbsG,omitempty"`
	FatG     *float64 `json:"fatG,omitempty" bson:"fatG,omitempty"`
	Calories *float64 `json:"calories,omitempty" bson:"calories,omitempty"`
	FiberG   *float64 `json:"fiberG,omitempty" bson:"fiberG,omitempty"`
}

type User struct {
	Id          string    `json:"id"`
	CoachId     string    `json:"coachId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	DateOfBirth *string   `json:"dateOfBirth,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
}

type Filter struct {
	UserIds []string
	Types   []MetricType
	From    *time.Time
	To      *time.Time
}

type UserFilter struct {
	CoachId *string
}

//go:generate mockgen --build_flags=--mod=mod -source=./entries.go -destination=./test/mock_repository.go -package test MockRepository

// Repository is the read side of the persistence collaborator. The analytics
// engine never writes through it.
type Repository interface {
	ListMetricEntries(ctx context.Context, filter Filter) ([]MetricEntry, error)
	ListFoodEntries(ctx context.Context, filter Filter) ([]FoodEntry, error)
	GetMacroTargets(ctx context.Context, userIds []string) (map[string]MacroTarget, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
	GetUser(ctx context.Context, userId string) (*User, error)
}
