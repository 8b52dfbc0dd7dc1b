package analytics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/metabolic-health/coach/analytics"
	"github.com/metabolic-health/coach/entries"
	entriesTest "github.com/metabolic-health/coach/entries/test"
)

var _ = Describe("Snapshot", func() {
	now := time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)

	It("orders users by id and indexes entries by user", func() {
		users := []entries.User{{Id: "b"}, {Id: "a"}}
		metrics := []entries.MetricEntry{
			entriesTest.Metric("a", entries.MetricTypeWeight, now, entries.ScalarValue(180)),
			entriesTest.Metric("b", entries.MetricTypeBP, now, entries.BloodPressureValue(120, 80)),
			entriesTest.Metric("a", entries.MetricTypeGlucose, now, entries.ScalarValue(95)),
		}
		foods := []entries.FoodEntry{entriesTest.Food("b", now, 30, 20)}
		protein := 120.0
		targets := map[string]entries.MacroTarget{"a": {UserId: "a", ProteinG: &protein}}

		snapshot := analytics.NewSnapshot(users, metrics, foods, targets)
		Expect(snapshot.Users()).To(HaveLen(2))
		Expect(snapshot.Users()[0].Id).To(Equal("a"))
		Expect(snapshot.Metrics("a")).To(HaveLen(2))
		Expect(snapshot.Metrics("b")).To(HaveLen(1))
		Expect(snapshot.Foods("a")).To(BeEmpty())
		Expect(snapshot.AllFoods()).To(HaveLen(1))
		Expect(snapshot.Target("a").ProteinG).To(HaveValue(Equal(120.0)))
		Expect(snapshot.Target("b")).To(BeNil())

		_, ok := snapshot.User("c")
		Expect(ok).To(BeFalse())
	})

	It("is not affected by later changes to the inputs", func() {
		users := []entries.User{{Id: "a", Timezone: "UTC"}}
		metrics := []entries.MetricEntry{entriesTest.Metric("a", entries.MetricTypeBP, now, entries.BloodPressureValue(130, 85))}
		food := entriesTest.Food("a", now, 30, 20)
		protein := 120.0
		targets := map[string]entries.MacroTarget{"a": {UserId: "a", ProteinG: &protein}}

		snapshot := analytics.NewSnapshot(users, metrics, []entries.FoodEntry{food}, targets)

		users[0].Timezone = "Asia/Tokyo"
		metrics[0].Value = entries.ScalarValue(1)
		food.AiOutput["macros"].(map[string]interface{})["protein"] = 99.0
		protein = 10

		user, ok := snapshot.User("a")
		Expect(ok).To(BeTrue())
		Expect(user.Timezone).To(Equal("UTC"))

		systolic, diastolic, ok := snapshot.Metrics("a")[0].Value.BloodPressure()
		Expect(ok).To(BeTrue())
		Expect(systolic).To(Equal(130.0))
		Expect(diastolic).To(Equal(85.0))
		Expect(snapshot.Foods("a")[0].Macros().Protein()).To(Equal(30.0))
		Expect(*snapshot.Target("a").ProteinG).To(Equal(120.0))
	})

	It("is empty without records", func() {
		snapshot := analytics.NewSnapshot(nil, nil, nil, nil)
		Expect(snapshot.Users()).To(BeEmpty())
		Expect(snapshot.AllFoods()).To(BeEmpty())
	})
})
