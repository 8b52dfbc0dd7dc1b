package localdate

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const DefaultCacheSize = 256

// Resolver maps participant time zone names to calendars. Unknown or empty names
// resolve to the deployment calendar.
type Resolver struct {
	fallback Calendar
	cache    *lru.Cache
}

func NewResolver(fallback *time.Location, size int) (*Resolver, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("unable to create time zone cache: %w", err)
	}
	return &Resolver{
		fallback: New(fallback),
		cache:    cache,
	}, nil
}

func (r *Resolver) Default() Calendar {
	return r.fallback
}

// Calendar returns the calendar for the named zone and whether the name was
// resolved. The fallback calendar is returned when it was not.
func (r *Resolver) Calendar(name string) (Calendar, bool) {
	if name == "" {
		return r.fallback, false
	}
	if cached, ok := r.cache.Get(name); ok {
		if loc, ok := cached.(*time.Location); ok {
			return New(loc), true
		}
		return r.fallback, false
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		r.cache.Add(name, nil)
		return r.fallback, false
	}
	r.cache.Add(name, loc)
	return New(loc), true
}
