package flags

import "github.com/kelseyhightower/envconfig"

// Config holds the clinical thresholds. Every threshold is inclusive.
type Config struct {
	HighGlucoseMgdL       float64 `envconfig:"COACH_FLAG_HIGH_GLUCOSE_MGDL" default:"110"`
	HighGlucoseDays       int     `envconfig:"COACH_FLAG_HIGH_GLUCOSE_DAYS" default:"3"`
	HighGlucoseWindowDays int     `envconfig:"COACH_FLAG_HIGH_GLUCOSE_WINDOW_DAYS" default:"3"`

	ElevatedSystolic     float64 `envconfig:"COACH_FLAG_ELEVATED_SYSTOLIC" default:"140"`
	ElevatedDiastolic    float64 `envconfig:"COACH_FLAG_ELEVATED_DIASTOLIC" default:"90"`
	ElevatedBPDays       int     `envconfig:"COACH_FLAG_ELEVATED_BP_DAYS" default:"2"`
	ElevatedBPWindowDays int     `envconfig:"COACH_FLAG_ELEVATED_BP_WINDOW_DAYS" default:"7"`

	LowKetonesMmolL      float64 `envconfig:"COACH_FLAG_LOW_KETONES_MMOL" default:"0.1"`
	LowKetonesDays       int     `envconfig:"COACH_FLAG_LOW_KETONES_DAYS" default:"3"`
	LowKetonesWindowDays int     `envconfig:"COACH_FLAG_LOW_KETONES_WINDOW_DAYS" default:"3"`

	MissedLoggingDays int `envconfig:"COACH_FLAG_MISSED_LOGGING_DAYS" default:"3"`
}

func DefaultConfig() Config {
	return Config{
		HighGlucoseMgdL:       110,
		HighGlucoseDays:       3,
		HighGlucoseWindowDays: 3,

		ElevatedSystolic:     140,
		ElevatedDiastolic:    90,
		ElevatedBPDays:       2,
		ElevatedBPWindowDays: 7,

		LowKetonesMmolL:      0.1,
		LowKetonesDays:       3,
		LowKetonesWindowDays: 3,

		MissedLoggingDays: 3,
	}
}

func NewConfig() (Config, error) {
	cfg := Config{}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
