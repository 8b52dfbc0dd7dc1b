package test

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/onsi/ginkgo/v2"
)

var (
	Faker  = faker.NewWithSeed(Source)
	Rand   = rand.New(Source)
	Source = rand.NewSource(ginkgo.GinkgoRandomSeed())
)

// Float returns a random value in [min, max).
func Float(min, max float64) float64 {
	return min + Rand.Float64()*(max-min)
}

// Instant returns a random UTC instant within the given number of days before now.
func Instant(now time.Time, days int) time.Time {
	offset := time.Duration(Rand.Int63n(int64(days) * int64(24*time.Hour)))
	return now.Add(-offset).UTC().Truncate(time.Second)
}
