package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpPort uint16 `envconfig:"COACH_HTTP_PORT" default:"8080" required:"true"`

	// Timezone is the deployment zone local dates fall back to when a participant
	// has no valid zone of their own.
	Timezone          string `envconfig:"COACH_TIMEZONE" default:"UTC"`
	TimezoneCacheSize int    `envconfig:"COACH_TIMEZONE_CACHE_SIZE" default:"256"`

	AdherenceWindowDays    int `envconfig:"COACH_ADHERENCE_WINDOW_DAYS" default:"7"`
	ConsistencyWindowWeeks int `envconfig:"COACH_CONSISTENCY_WINDOW_WEEKS" default:"4"`
	MacroWindowDays        int `envconfig:"COACH_MACRO_WINDOW_DAYS" default:"7"`
	OutcomePeriodDays      int `envconfig:"COACH_OUTCOME_PERIOD_DAYS" default:"30"`
	TrendWeeks             int `envconfig:"COACH_TREND_WEEKS" default:"12"`
}

func New() *Config {
	return &Config{
		HttpPort:               8080,
		Timezone:               "UTC",
		TimezoneCacheSize:      256,
		AdherenceWindowDays:    7,
		ConsistencyWindowWeeks: 4,
		MacroWindowDays:        7,
		OutcomePeriodDays:      30,
		TrendWeeks:             12,
	}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid deployment time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
