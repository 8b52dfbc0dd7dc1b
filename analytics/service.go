package analytics

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fatih/structs"
	"go.uber.org/zap"

	"github.com/metabolic-health/coach/adherence"
	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/store"
)

// Clock returns the current instant. It is injected so every view can be computed
// for a fixed time.
type Clock func() time.Time

func SystemClock() Clock {
	return time.Now
}

// Scope selects the participants a view is computed for. A nil coach id selects
// every participant.
type Scope struct {
	CoachId *string
}

//go:generate mockgen --build_flags=--mod=mod -source=./service.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Overview(ctx context.Context, scope Scope) (*Overview, error)
	Flags(ctx context.Context, scope Scope) (*FlagsReport, error)
	Macros(ctx context.Context, scope Scope, days int) (*MacroReport, error)
	Outcomes(ctx context.Context, scope Scope, days int) (*OutcomeReport, error)
	Trends(ctx context.Context, scope Scope, weeks int) (*TrendReport, error)
	ParticipantReport(ctx context.Context, userId string) (*ParticipantReport, error)
	Consistency(ctx context.Context, userId string, weeks int) (*adherence.Consistency, error)
}

type service struct {
	repo     entries.Repository
	engine   *Engine
	resolver *localdate.Resolver
	reads    store.ReadSession
	clock    Clock
	logger   *zap.SugaredLogger

	warnedZones mapset.Set[string]
}

var _ Service = &service{}

func NewService(repo entries.Repository, engine *Engine, resolver *localdate.Resolver, reads store.ReadSession, clock Clock, logger *zap.SugaredLogger) (Service, error) {
	if reads == nil {
		reads = store.DirectReads
	}
	if clock == nil {
		clock = SystemClock()
	}
	logger.Infow("analytics service configured",
		"settings", structs.Map(engine.Settings()),
		"thresholds", structs.Map(engine.Thresholds()),
		"deploymentTimezone", resolver.Default().Location().String(),
	)
	return &service{
		repo:        repo,
		engine:      engine,
		resolver:    resolver,
		reads:       reads,
		clock:       clock,
		logger:      logger,
		warnedZones: mapset.NewSet[string](),
	}, nil
}

func (s *service) Overview(ctx context.Context, scope Scope) (*Overview, error) {
	snapshot, err := s.snapshotForScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	overview := s.engine.Overview(snapshot, s.clock())
	return &overview, nil
}

func (s *service) Flags(ctx context.Context, scope Scope) (*FlagsReport, error) {
	snapshot, err := s.snapshotForScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	report := s.engine.Flags(snapshot, s.clock())
	s.logger.Debugw("evaluated health flags", "coachId", scope.CoachId, "flags", len(report.Flags))
	return &report, nil
}

func (s *service) Macros(ctx context.Context, scope Scope, days int) (*MacroReport, error) {
	snapshot, err := s.snapshotForScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	report := s.engine.Macros(snapshot, s.clock(), days)
	return &report, nil
}

func (s *service) Outcomes(ctx context.Context, scope Scope, days int) (*OutcomeReport, error) {
	snapshot, err := s.snapshotForScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	report := s.engine.Outcomes(snapshot, s.clock(), days)
	return &report, nil
}

func (s *service) Trends(ctx context.Context, scope Scope, weeks int) (*TrendReport, error) {
	snapshot, err := s.snapshotForScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	report := s.engine.Trends(snapshot, s.clock(), weeks)
	return &report, nil
}

func (s *service) ParticipantReport(ctx context.Context, userId string) (*ParticipantReport, error) {
	snapshot, err := s.snapshotForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.engine.ParticipantReport(snapshot, userId, s.clock())
}

func (s *service) Consistency(ctx context.Context, userId string, weeks int) (*adherence.Consistency, error) {
	snapshot, err := s.snapshotForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.engine.Consistency(snapshot, userId, s.clock(), weeks)
}

func (s *service) snapshotForScope(ctx context.Context, scope Scope) (*Snapshot, error) {
	var snapshot *Snapshot
	err := s.reads(ctx, func(ctx context.Context) error {
		users, err := s.repo.ListUsers(ctx, entries.UserFilter{CoachId: scope.CoachId})
		if err != nil {
			return err
		}
		snapshot, err = s.load(ctx, users)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("loaded analytics snapshot", "coachId", scope.CoachId, "participants", len(snapshot.Users()))
	return snapshot, nil
}

func (s *service) snapshotForUser(ctx context.Context, userId string) (*Snapshot, error) {
	var snapshot *Snapshot
	err := s.reads(ctx, func(ctx context.Context) error {
		user, err := s.repo.GetUser(ctx, userId)
		if err != nil {
			return err
		}
		snapshot, err = s.load(ctx, []entries.User{*user})
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// load fetches the entries and targets of the given users. No users means no
// queries, an empty id list would otherwise match every entry.
func (s *service) load(ctx context.Context, users []entries.User) (*Snapshot, error) {
	if len(users) == 0 {
		return NewSnapshot(nil, nil, nil, nil), nil
	}
	s.checkTimezones(users)

	userIds := make([]string, 0, len(users))
	for _, u := range users {
		userIds = append(userIds, u.Id)
	}
	filter := entries.Filter{UserIds: userIds}

	metrics, err := s.repo.ListMetricEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	foods, err := s.repo.ListFoodEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	targets, err := s.repo.GetMacroTargets(ctx, userIds)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("fetched entries", "participants", len(users), "metricEntries", len(metrics), "foodEntries", len(foods), "targets", len(targets))
	return NewSnapshot(users, metrics, foods, targets), nil
}

// checkTimezones warns once per unknown zone name.
func (s *service) checkTimezones(users []entries.User) {
	for _, u := range users {
		if u.Timezone == "" {
			continue
		}
		if _, ok := s.resolver.Calendar(u.Timezone); ok {
			continue
		}
		if s.warnedZones.Add(u.Timezone) {
			s.logger.Warnw("unknown participant time zone, using deployment zone", "timezone", u.Timezone, "userId", u.Id)
		}
	}
}
