package adherence_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/metabolic-health/coach/adherence"
	"github.com/metabolic-health/coach/entries"
	entriesTest "github.com/metabolic-health/coach/entries/test"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/pointer"
)

var _ = Describe("Consistency", func() {
	const userId = "participant-2"

	// Wednesday
	now := time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)
	cal := localdate.New(time.UTC)

	foodsOn := func(days ...int) []entries.FoodEntry {
		result := make([]entries.FoodEntry, 0, len(days))
		for _, n := range days {
			result = append(result, entriesTest.RandomFoodEntry(userId, now.AddDate(0, 0, -n)))
		}
		return result
	}

	DescribeTable("ClassifyPattern",
		func(days []string, expected adherence.Pattern, gap *float64) {
			pattern, avg := adherence.ClassifyPattern(days)
			Expect(pattern).To(Equal(expected))
			if gap == nil {
				Expect(avg).To(BeNil())
			} else {
				Expect(avg).To(HaveValue(BeNumerically("~", *gap, 1e-9)))
			}
		},
		Entry("no days", []string{}, adherence.PatternSporadic, nil),
		Entry("one day", []string{"2024-06-01"}, adherence.PatternSporadic, nil),
		Entry("every day", []string{"2024-06-01", "2024-06-02", "2024-06-03"}, adherence.PatternDaily, pointer.FromAny(1.0)),
		Entry("every other day", []string{"2024-06-01", "2024-06-03", "2024-06-05"}, adherence.PatternDaily, pointer.FromAny(2.0)),
		Entry("weekly", []string{"2024-06-01", "2024-06-08", "2024-06-15"}, adherence.PatternWeekly, pointer.FromAny(7.0)),
		Entry("ten day gaps", []string{"2024-06-01", "2024-06-11"}, adherence.PatternWeekly, pointer.FromAny(10.0)),
		Entry("rare", []string{"2024-05-01", "2024-06-01"}, adherence.PatternSporadic, pointer.FromAny(31.0)),
	)

	It("recommends the streak to daily loggers", func() {
		consistency := adherence.CalculateConsistency(nil, foodsOn(0, 1, 2, 3, 4, 5, 6, 7, 8, 9), cal, now, 4)
		Expect(consistency.Pattern).To(Equal(adherence.PatternDaily))
		Expect(consistency.RecommendedMetric).To(Equal(adherence.MetricStreak))
		Expect(consistency.Streak.Current).To(Equal(10))
		Expect(consistency.WeeksWithLogs).To(Equal(2))
		Expect(consistency.TotalWeeks).To(Equal(4))
		Expect(consistency.ConsistencyPercent).To(Equal(50))
	})

	It("recommends consistency to weekly loggers", func() {
		consistency := adherence.CalculateConsistency(nil, foodsOn(0, 7, 14, 21, 28), cal, now, 4)
		Expect(consistency.Pattern).To(Equal(adherence.PatternWeekly))
		Expect(consistency.RecommendedMetric).To(Equal(adherence.MetricConsistency))
		Expect(consistency.WeeksWithLogs).To(Equal(4))
		Expect(consistency.ConsistencyPercent).To(Equal(100))
	})

	It("counts the current week", func() {
		consistency := adherence.CalculateConsistency(nil, foodsOn(2), cal, now, 4)
		Expect(consistency.Pattern).To(Equal(adherence.PatternSporadic))
		Expect(consistency.AverageGapDays).To(BeNil())
		Expect(consistency.WeeksWithLogs).To(Equal(1))
		Expect(consistency.ConsistencyPercent).To(Equal(25))
	})

	It("ignores logs dated after today", func() {
		metrics := []entries.MetricEntry{
			entriesTest.RandomMetricEntry(userId, entries.MetricTypeWeight, now.AddDate(0, 0, 3)),
		}
		consistency := adherence.CalculateConsistency(metrics, nil, cal, now, 4)
		Expect(consistency.WeeksWithLogs).To(Equal(0))
		Expect(consistency.Streak.LastLogDate).To(BeNil())
	})

	It("falls back to the default window", func() {
		consistency := adherence.CalculateConsistency(nil, nil, cal, now, 0)
		Expect(consistency.TotalWeeks).To(Equal(adherence.DefaultConsistencyWindowWeeks))
		Expect(consistency.ConsistencyPercent).To(Equal(0))
	})
})
