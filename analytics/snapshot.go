package analytics

import (
	"sort"

	"github.com/mohae/deepcopy"

	"github.com/metabolic-health/coach/entries"
)

// Snapshot is the consistent set of records one analytics invocation runs on. The
// records are copied on construction so later changes by the caller are not seen.
type Snapshot struct {
	users   []entries.User
	metrics map[string][]entries.MetricEntry
	foods   map[string][]entries.FoodEntry
	targets map[string]entries.MacroTarget
}

func NewSnapshot(users []entries.User, metrics []entries.MetricEntry, foods []entries.FoodEntry, targets map[string]entries.MacroTarget) *Snapshot {
	s := &Snapshot{
		users:   make([]entries.User, 0, len(users)),
		metrics: map[string][]entries.MetricEntry{},
		foods:   map[string][]entries.FoodEntry{},
		targets: map[string]entries.MacroTarget{},
	}
	if len(users) > 0 {
		s.users = deepcopy.Copy(users).([]entries.User)
	}
	sort.SliceStable(s.users, func(i, j int) bool {
		return s.users[i].Id < s.users[j].Id
	})

	if len(metrics) > 0 {
		for _, m := range deepcopy.Copy(metrics).([]entries.MetricEntry) {
			s.metrics[m.UserId] = append(s.metrics[m.UserId], m)
		}
	}
	if len(foods) > 0 {
		for _, f := range deepcopy.Copy(foods).([]entries.FoodEntry) {
			s.foods[f.UserId] = append(s.foods[f.UserId], f)
		}
	}
	if len(targets) > 0 {
		s.targets = deepcopy.Copy(targets).(map[string]entries.MacroTarget)
	}
	return s
}

// Users are ordered by id.
func (s *Snapshot) Users() []entries.User {
	return s.users
}

func (s *Snapshot) User(userId string) (entries.User, bool) {
	for _, u := range s.users {
		if u.Id == userId {
			return u, true
		}
	}
	return entries.User{}, false
}

func (s *Snapshot) Metrics(userId string) []entries.MetricEntry {
	return s.metrics[userId]
}

func (s *Snapshot) Foods(userId string) []entries.FoodEntry {
	return s.foods[userId]
}

func (s *Snapshot) Target(userId string) *entries.MacroTarget {
	target, ok := s.targets[userId]
	if !ok {
		return nil
	}
	return &target
}

// AllFoods returns the food entries of every participant of the snapshot.
func (s *Snapshot) AllFoods() []entries.FoodEntry {
	out := make([]entries.FoodEntry, 0)
	for _, u := range s.users {
		out = append(out, s.foods[u.Id]...)
	}
	return out
}
