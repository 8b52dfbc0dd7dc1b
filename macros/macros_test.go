package macros_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/metabolic-health/coach/entries"
	entriesTest "github.com/metabolic-health/coach/entries/test"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/pointer"
	"github.com/metabolic-health/coach/macros"
)

var _ = Describe("Macros", func() {
	const userId = "participant-1"

	now := time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)
	cal := localdate.New(time.UTC)

	at := func(daysAgo int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Add(-3 * time.Hour)
	}

	target := func(protein, carbs *float64) *entries.MacroTarget {
		return &entries.MacroTarget{UserId: userId, ProteinG: protein, CarbsG: carbs}
	}

	DescribeTable("MeetsProtein",
		func(avg, t float64, expected bool) {
			Expect(macros.MeetsProtein(avg, t)).To(Equal(expected))
		},
		Entry("on target", 150.0, 150.0, true),
		Entry("within tolerance", 145.0, 150.0, true),
		Entry("at the lower bound", 135.0, 150.0, true),
		Entry("at the upper bound", 165.0, 150.0, true),
		Entry("too low", 120.0, 100.0, false),
		Entry("below the lower bound", 134.9, 150.0, false),
		Entry("without a target", 100.0, 0.0, false),
	)

	DescribeTable("ExceedsCarbs",
		func(avg, t float64, expected bool) {
			Expect(macros.ExceedsCarbs(avg, t)).To(Equal(expected))
		},
		Entry("at the ceiling", 110.0, 100.0, false),
		Entry("above the ceiling", 111.0, 100.0, true),
		Entry("under target", 80.0, 100.0, false),
		Entry("without a target", 80.0, 0.0, false),
	)

	Describe("Evaluate", func() {
		It("divides by the days with food", func() {
			foods := []entries.FoodEntry{
				entriesTest.Food(userId, at(0), 80, 40),
				entriesTest.Food(userId, at(0).Add(-time.Hour), 70, 20),
				entriesTest.Food(userId, at(3), 140, 60),
			}
			result := macros.Evaluate(userId, foods, target(pointer.FromAny(150.0), pointer.FromAny(50.0)), cal, now, 7)
			Expect(result.DaysWithFood).To(Equal(2))
			Expect(result.FoodEntries).To(Equal(3))
			Expect(result.AvgDailyProtein).To(BeNumerically("~", 145, 1e-9))
			Expect(result.AvgDailyCarbs).To(BeNumerically("~", 60, 1e-9))
			Expect(result.Eligible).To(BeTrue())
			Expect(result.MeetingProtein).To(HaveValue(BeTrue()))
			Expect(result.ProteinDeviationPercent).To(HaveValue(BeNumerically("~", -3.333, 1e-3)))
			Expect(result.CarbsOverTarget).To(HaveValue(BeTrue()))
		})

		It("flags protein far from the target", func() {
			foods := []entries.FoodEntry{entriesTest.Food(userId, at(1), 120, 10)}
			result := macros.Evaluate(userId, foods, target(pointer.FromAny(100.0), nil), cal, now, 7)
			Expect(result.MeetingProtein).To(HaveValue(BeFalse()))
			Expect(result.CarbsTarget).To(BeNil())
			Expect(result.CarbsOverTarget).To(BeNil())
		})

		It("is not eligible without a protein target", func() {
			foods := []entries.FoodEntry{entriesTest.Food(userId, at(1), 120, 10)}
			Expect(macros.Evaluate(userId, foods, nil, cal, now, 7).Eligible).To(BeFalse())
			Expect(macros.Evaluate(userId, foods, target(nil, pointer.FromAny(100.0)), cal, now, 7).Eligible).To(BeFalse())
			Expect(macros.Evaluate(userId, foods, target(pointer.FromAny(0.0), nil), cal, now, 7).Eligible).To(BeFalse())
		})

		It("is not eligible without food in the window", func() {
			foods := []entries.FoodEntry{entriesTest.Food(userId, at(7), 150, 10)}
			result := macros.Evaluate(userId, foods, target(pointer.FromAny(150.0), pointer.FromAny(100.0)), cal, now, 7)
			Expect(result.Eligible).To(BeFalse())
			Expect(result.AvgDailyProtein).To(Equal(0.0))
			Expect(result.MeetingProtein).To(BeNil())
		})

		It("prefers user corrections", func() {
			food := entriesTest.Food(userId, at(0), 40, 40)
			food.UserCorrections = map[string]interface{}{"macros": map[string]interface{}{"protein": 150, "carbs": "55"}}
			result := macros.Evaluate(userId, []entries.FoodEntry{food}, target(pointer.FromAny(150.0), pointer.FromAny(50.0)), cal, now, 7)
			Expect(result.AvgDailyProtein).To(Equal(150.0))
			Expect(result.AvgDailyCarbs).To(Equal(55.0))
			Expect(result.CarbsOverTarget).To(HaveValue(BeFalse()))
		})

		It("uses the default window", func() {
			Expect(macros.Evaluate(userId, nil, nil, cal, now, 0).WindowDays).To(Equal(macros.DefaultWindowDays))
		})
	})

	Describe("Cohort", func() {
		It("only counts eligible participants in the percentage", func() {
			yes, no := true, false
			results := []macros.Compliance{
				{Eligible: true, MeetingProtein: &yes, CarbsOverTarget: &no},
				{Eligible: true, MeetingProtein: &no, CarbsOverTarget: &yes},
				{Eligible: true, MeetingProtein: &yes},
				{Eligible: false},
			}
			cohort := macros.Cohort(results)
			Expect(cohort).To(Equal(macros.CohortCompliance{
				Participants:          4,
				Eligible:              3,
				MeetingProtein:        2,
				PercentMeetingProtein: 66.7,
				CarbsEvaluated:        2,
				CarbsOverTarget:       1,
			}))
		})

		It("is 0 without eligible participants", func() {
			Expect(macros.Cohort(nil).PercentMeetingProtein).To(Equal(0.0))
		})
	})

	Describe("RangeAverages", func() {
		It("divides by the full range while Evaluate divides by logged days", func() {
			foods := []entries.FoodEntry{
				entriesTest.Food(userId, at(0), 100, 50),
				entriesTest.Food(userId, at(2), 100, 50),
			}
			today := cal.Today(now)
			from := localdate.AddDays(today, -6)

			averages := macros.RangeAverages(foods, cal, from, today)
			Expect(averages.RangeDays).To(Equal(7))
			Expect(averages.FoodEntries).To(Equal(2))
			Expect(averages.AvgDailyProtein).To(BeNumerically("~", 200.0/7, 1e-9))

			compliance := macros.Evaluate(userId, foods, target(pointer.FromAny(100.0), nil), cal, now, 7)
			Expect(compliance.AvgDailyProtein).To(BeNumerically("~", 100, 1e-9))
		})

		It("splits averages between participants", func() {
			foods := []entries.FoodEntry{entriesTest.Food(userId, at(0), 90, 30)}
			today := cal.Today(now)
			averages := macros.RangeAverages(foods, cal, today, today).PerParticipant(3)
			Expect(averages.AvgDailyProtein).To(BeNumerically("~", 30, 1e-9))
			Expect(averages.AvgDailyCarbs).To(BeNumerically("~", 10, 1e-9))
		})

		It("returns nothing for an inverted range", func() {
			averages := macros.RangeAverages(nil, cal, "2024-06-10", "2024-06-01")
			Expect(averages.RangeDays).To(Equal(0))
		})
	})
})
