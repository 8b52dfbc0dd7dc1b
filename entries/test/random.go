package test

import (
	"time"

	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/test"
)

// RandomValue returns a payload within the physiologic range of the type, in
// storage units.
func RandomValue(t entries.MetricType) entries.MetricValue {
	switch t {
	case entries.MetricTypeBP:
		diastolic := float64(test.Faker.IntBetween(60, 95))
		return entries.BloodPressureValue(diastolic+float64(test.Faker.IntBetween(25, 50)), diastolic)
	case entries.MetricTypeWeight:
		return entries.ScalarValue(test.Float(120, 320))
	case entries.MetricTypeWaist:
		return entries.ScalarValue(test.Float(25, 55))
	case entries.MetricTypeGlucose:
		return entries.ScalarValue(float64(test.Faker.IntBetween(70, 180)))
	default:
		return entries.ScalarValue(test.Float(0.1, 3))
	}
}

func RandomUser(coachId string, now time.Time) entries.User {
	return entries.User{
		Id:        test.Faker.UUID().V4(),
		CoachId:   coachId,
		CreatedAt: now.AddDate(0, 0, -test.Faker.IntBetween(30, 365)).UTC().Truncate(time.Millisecond),
	}
}

// RandomMetricEntry returns a live entry recorded at its event time.
func RandomMetricEntry(userId string, t entries.MetricType, timestamp time.Time) entries.MetricEntry {
	return entries.MetricEntry{
		Id:        test.Faker.UUID().V4(),
		UserId:    userId,
		Type:      t,
		Timestamp: timestamp,
		CreatedAt: timestamp,
		Value:     RandomValue(t),
		Source:    entries.SourceManual,
	}
}

func RandomFoodEntry(userId string, timestamp time.Time) entries.FoodEntry {
	return entries.FoodEntry{
		Id:        test.Faker.UUID().V4(),
		UserId:    userId,
		Timestamp: timestamp,
		AiOutput: map[string]interface{}{
			"macros": map[string]interface{}{
				"protein":  float64(test.Faker.IntBetween(5, 60)),
				"carbs":    float64(test.Faker.IntBetween(5, 80)),
				"fat":      float64(test.Faker.IntBetween(2, 40)),
				"calories": float64(test.Faker.IntBetween(150, 900)),
			},
		},
	}
}

func Metric(userId string, t entries.MetricType, timestamp time.Time, value entries.MetricValue) entries.MetricEntry {
	return entries.MetricEntry{
		UserId:    userId,
		Type:      t,
		Timestamp: timestamp,
		CreatedAt: timestamp,
		Value:     value,
		Source:    entries.SourceManual,
	}
}

func Food(userId string, timestamp time.Time, protein, carbs float64) entries.FoodEntry {
	return entries.FoodEntry{
		UserId:    userId,
		Timestamp: timestamp,
		AiOutput: map[string]interface{}{
			"macros": map[string]interface{}{"protein": protein, "carbs": carbs},
		},
	}
}
