package adherence_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/metabolic-health/coach/adherence"
	"github.com/metabolic-health/coach/entries"
	entriesTest "github.com/metabolic-health/coach/entries/test"
	"github.com/metabolic-health/coach/localdate"
)

var _ = Describe("Adherence", func() {
	const userId = "participant-1"

	var (
		cal localdate.Calendar
		now time.Time
	)

	BeforeEach(func() {
		cal = localdate.New(time.UTC)
		now = time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)
	})

	daysAgo := func(n int) time.Time {
		return now.AddDate(0, 0, -n).Add(-2 * time.Hour)
	}

	logAll := func(day time.Time) []entries.MetricEntry {
		result := make([]entries.MetricEntry, 0, len(entries.CanonicalTypes))
		for _, t := range entries.CanonicalTypes {
			result = append(result, entriesTest.RandomMetricEntry(userId, t, day))
		}
		return result
	}

	Describe("CalculateScore", func() {
		It("is 100 when every type is logged every day", func() {
			metrics := make([]entries.MetricEntry, 0)
			for i := 0; i < 7; i++ {
				metrics = append(metrics, logAll(daysAgo(i))...)
			}
			score := adherence.CalculateScore(metrics, cal, now)
			Expect(score.Score).To(Equal(100))
			Expect(score.DaysWithData).To(Equal(7))
			Expect(score.WindowDays).To(Equal(7))
		})

		It("is 0 without entries", func() {
			score := adherence.CalculateScore(nil, cal, now)
			Expect(score.Score).To(Equal(0))
			Expect(score.DaysWithData).To(Equal(0))
		})

		It("leaves days without any metric out of the average", func() {
			score := adherence.CalculateScore(logAll(daysAgo(3)), cal, now)
			Expect(score.Score).To(Equal(100))
			Expect(score.DaysWithData).To(Equal(1))
		})

		It("averages the share of types per day", func() {
			metrics := logAll(daysAgo(0))
			metrics = append(metrics, entriesTest.RandomMetricEntry(userId, entries.MetricTypeWeight, daysAgo(1)))
			Expect(adherence.CalculateScore(metrics, cal, now).Score).To(Equal(60))
		})

		It("counts a type once per day", func() {
			metrics := []entries.MetricEntry{
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeGlucose, daysAgo(0)),
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeGlucose, daysAgo(0).Add(-time.Hour)),
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeKetones, daysAgo(0)),
			}
			Expect(adherence.CalculateScore(metrics, cal, now).Score).To(Equal(40))
		})

		It("ignores entries outside the window and unknown types", func() {
			metrics := logAll(daysAgo(7))
			metrics = append(metrics, entriesTest.RandomMetricEntry(userId, entries.MetricType("STEPS"), daysAgo(0)))
			score := adherence.CalculateScore(metrics, cal, now)
			Expect(score.Score).To(Equal(0))
			Expect(score.DaysWithData).To(Equal(0))
		})

		It("buckets days in the participant's zone", func() {
			tokyo, err := time.LoadLocation("Asia/Tokyo")
			Expect(err).ToNot(HaveOccurred())
			// 16:00 UTC on the 12th is already the 13th in Tokyo.
			entry := time.Date(2024, 6, 12, 16, 0, 0, 0, time.UTC)
			later := time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)
			metrics := logAll(entry)
			Expect(adherence.CalculateScore(metrics, localdate.New(tokyo), later).DaysWithData).To(Equal(1))
			Expect(adherence.CalculateScore(metrics, localdate.New(time.UTC), later).DaysWithData).To(Equal(0))
		})
	})

	Describe("CalculateStreak", func() {
		It("counts consecutive days back from today", func() {
			foods := []entries.FoodEntry{
				entriesTest.RandomFoodEntry(userId, daysAgo(0)),
				entriesTest.RandomFoodEntry(userId, daysAgo(4)),
			}
			metrics := []entries.MetricEntry{
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeWeight, daysAgo(1)),
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeWaist, daysAgo(2)),
			}
			streak := adherence.CalculateStreak(metrics, foods, cal, now)
			Expect(streak.Current).To(Equal(3))
			Expect(streak.Longest).To(Equal(3))
			Expect(streak.LastLogDate).To(HaveValue(Equal("2024-06-12")))
		})

		It("is 0 without a log today", func() {
			metrics := []entries.MetricEntry{
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeWeight, daysAgo(1)),
				entriesTest.RandomMetricEntry(userId, entries.MetricTypeWeight, daysAgo(2)),
			}
			streak := adherence.CalculateStreak(metrics, nil, cal, now)
			Expect(streak.Current).To(Equal(0))
			Expect(streak.Longest).To(Equal(2))
			Expect(streak.LastLogDate).To(HaveValue(Equal("2024-06-11")))
		})

		It("finds the longest run in the history", func() {
			metrics := make([]entries.MetricEntry, 0)
			for _, n := range []int{0, 5, 6, 7, 8, 12} {
				metrics = append(metrics, entriesTest.RandomMetricEntry(userId, entries.MetricTypeGlucose, daysAgo(n)))
			}
			streak := adherence.CalculateStreak(metrics, nil, cal, now)
			Expect(streak.Current).To(Equal(1))
			Expect(streak.Longest).To(Equal(4))
		})

		It("has no last log date without entries", func() {
			streak := adherence.CalculateStreak(nil, nil, cal, now)
			Expect(streak).To(Equal(adherence.Streak{}))
		})
	})
})
