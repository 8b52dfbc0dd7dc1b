package flags_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"

	"github.com/metabolic-health/coach/entries"
	entriesTest "github.com/metabolic-health/coach/entries/test"
	"github.com/metabolic-health/coach/flags"
	"github.com/metabolic-health/coach/localdate"
)

var _ = Describe("Detector", func() {
	var (
		detector *flags.Detector
		user     entries.User
		cal      localdate.Calendar
		now      time.Time
	)

	BeforeEach(func() {
		detector = flags.NewDetector(flags.DefaultConfig())
		now = time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)
		cal = localdate.New(time.UTC)
		user = entries.User{Id: "participant-1", CreatedAt: now.AddDate(0, -2, 0)}
	})

	at := func(daysAgo int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Add(-time.Hour)
	}

	glucose := func(daysAgo int, value float64) entries.MetricEntry {
		return entriesTest.Metric(user.Id, entries.MetricTypeGlucose, at(daysAgo), entries.ScalarValue(value))
	}

	bp := func(daysAgo int, systolic, diastolic float64) entries.MetricEntry {
		return entriesTest.Metric(user.Id, entries.MetricTypeBP, at(daysAgo), entries.BloodPressureValue(systolic, diastolic))
	}

	ketones := func(daysAgo int, value float64) entries.MetricEntry {
		return entriesTest.Metric(user.Id, entries.MetricTypeKetones, at(daysAgo), entries.ScalarValue(value))
	}

	ofType := func(result []flags.Flag, t flags.Type) *flags.Flag {
		for i := range result {
			if result[i].Type == t {
				return &result[i]
			}
		}
		return nil
	}

	detect := func(metrics []entries.MetricEntry) []flags.Flag {
		return detector.Detect(user, metrics, nil, cal, now)
	}

	It("has display labels", func() {
		Expect(flags.TypeHighGlucose.Label()).To(Equal("High Glucose"))
		Expect(flags.TypeElevatedBP.Label()).To(Equal("Elevated BP"))
		Expect(flags.TypeMissedLogging.Label()).To(Equal("Missed Logging"))
	})

	Describe("high glucose", func() {
		It("fires on three consecutive days at the threshold", func() {
			flag := ofType(detect([]entries.MetricEntry{glucose(0, 110), glucose(1, 125), glucose(2, 110)}), flags.TypeHighGlucose)
			Expect(flag).ToNot(BeNil())
			Expect(*flag).To(MatchFields(IgnoreExtras, Fields{
				"Label":         Equal("High Glucose"),
				"ParticipantId": Equal(user.Id),
				"Days":          Equal([]string{"2024-06-10", "2024-06-11", "2024-06-12"}),
				"Evidence":      Equal("Glucose at or above 110 mg/dL on 3 of the last 3 days"),
			}))
			Expect(flag.LastLogDate).To(HaveValue(Equal(at(0))))
		})

		It("does not fire below the threshold", func() {
			Expect(ofType(detect([]entries.MetricEntry{glucose(0, 110), glucose(1, 109.9), glucose(2, 110)}), flags.TypeHighGlucose)).To(BeNil())
		})

		It("counts readings of the same day once", func() {
			metrics := []entries.MetricEntry{glucose(0, 150), glucose(0, 160), glucose(0, 170), glucose(1, 140)}
			Expect(ofType(detect(metrics), flags.TypeHighGlucose)).To(BeNil())
		})

		It("only looks at the last three days", func() {
			metrics := []entries.MetricEntry{glucose(1, 150), glucose(2, 150), glucose(3, 150)}
			Expect(ofType(detect(metrics), flags.TypeHighGlucose)).To(BeNil())
		})

		It("fires when one qualifying reading shares the day with a normal one", func() {
			metrics := []entries.MetricEntry{glucose(0, 90), glucose(0, 118), glucose(1, 111), glucose(2, 130)}
			Expect(ofType(detect(metrics), flags.TypeHighGlucose)).ToNot(BeNil())
		})

		It("skips payloads that could not be decoded", func() {
			metrics := []entries.MetricEntry{
				glucose(0, 150),
				glucose(1, 150),
				entriesTest.Metric(user.Id, entries.MetricTypeGlucose, at(2), entries.InvalidValue()),
			}
			Expect(ofType(detect(metrics), flags.TypeHighGlucose)).To(BeNil())
		})
	})

	Describe("elevated blood pressure", func() {
		DescribeTable("evaluates both readings",
			func(systolic, diastolic float64, fires bool) {
				result := ofType(detect([]entries.MetricEntry{bp(0, systolic, diastolic), bp(4, systolic, diastolic)}), flags.TypeElevatedBP)
				if fires {
					Expect(result).ToNot(BeNil())
				} else {
					Expect(result).To(BeNil())
				}
			},
			Entry("high systolic", 145.0, 85.0, true),
			Entry("just below both thresholds", 139.0, 89.0, false),
			Entry("systolic at the threshold", 140.0, 89.0, true),
			Entry("diastolic at the threshold", 120.0, 90.0, true),
		)

		It("needs two distinct days within the week", func() {
			Expect(ofType(detect([]entries.MetricEntry{bp(0, 150, 95), bp(0, 152, 96)}), flags.TypeElevatedBP)).To(BeNil())
			Expect(ofType(detect([]entries.MetricEntry{bp(0, 150, 95), bp(7, 152, 96)}), flags.TypeElevatedBP)).To(BeNil())
			Expect(ofType(detect([]entries.MetricEntry{bp(0, 150, 95), bp(6, 152, 96)}), flags.TypeElevatedBP)).ToNot(BeNil())
		})

		It("ignores blood pressure stored as a single value", func() {
			metrics := []entries.MetricEntry{
				entriesTest.Metric(user.Id, entries.MetricTypeBP, at(0), entries.ScalarValue(160)),
				entriesTest.Metric(user.Id, entries.MetricTypeBP, at(1), entries.ScalarValue(160)),
			}
			Expect(ofType(detect(metrics), flags.TypeElevatedBP)).To(BeNil())
		})
	})

	Describe("low ketones", func() {
		It("fires on three days below the threshold", func() {
			flag := ofType(detect([]entries.MetricEntry{ketones(0, 0.05), ketones(1, 0), ketones(2, 0.09)}), flags.TypeLowKetones)
			Expect(flag).ToNot(BeNil())
			Expect(flag.Evidence).To(Equal("Ketones below 0.1 mmol/L on 3 of the last 3 days"))
		})

		It("does not fire at the threshold", func() {
			Expect(ofType(detect([]entries.MetricEntry{ketones(0, 0.05), ketones(1, 0.1), ketones(2, 0.09)}), flags.TypeLowKetones)).To(BeNil())
		})
	})

	Describe("missed logging", func() {
		It("fires three days after the last log", func() {
			foods := []entries.FoodEntry{entriesTest.RandomFoodEntry(user.Id, at(3))}
			flag := ofType(detector.Detect(user, nil, foods, cal, now), flags.TypeMissedLogging)
			Expect(flag).ToNot(BeNil())
			Expect(flag.Evidence).To(Equal("No metric or food logs in 3 days"))
			Expect(flag.LastLogDate).To(HaveValue(Equal(at(3))))
		})

		It("does not fire two days after the last log", func() {
			metrics := []entries.MetricEntry{glucose(5, 90), glucose(2, 90)}
			Expect(ofType(detect(metrics), flags.TypeMissedLogging)).To(BeNil())
		})

		It("measures from account creation without any log", func() {
			user.CreatedAt = now.AddDate(0, 0, -5)
			flag := ofType(detect(nil), flags.TypeMissedLogging)
			Expect(flag).ToNot(BeNil())
			Expect(flag.LastLogDate).To(BeNil())
			Expect(flag.Evidence).To(Equal("No logs since the account was created 5 days ago"))
		})

		It("does not fire for new accounts", func() {
			user.CreatedAt = now.AddDate(0, 0, -1)
			Expect(ofType(detect(nil), flags.TypeMissedLogging)).To(BeNil())
		})

		It("does not fire without a creation date", func() {
			user.CreatedAt = time.Time{}
			Expect(detect(nil)).To(BeEmpty())
		})

		It("ignores entries dated after now", func() {
			metrics := []entries.MetricEntry{entriesTest.Metric(user.Id, entries.MetricTypeWeight, now.Add(time.Hour), entries.ScalarValue(180))}
			Expect(flags.LastLog(metrics, nil, now)).To(BeNil())
		})
	})

	It("evaluates every rule independently", func() {
		metrics := []entries.MetricEntry{
			glucose(0, 200), glucose(1, 200), glucose(2, 200),
			bp(0, 150, 95), bp(1, 150, 95),
			ketones(0, 0), ketones(1, 0), ketones(2, 0),
		}
		result := detect(metrics)
		Expect(result).To(HaveLen(3))
		Expect(ofType(result, flags.TypeMissedLogging)).To(BeNil())
	})

	It("reads thresholds from the environment", func() {
		GinkgoT().Setenv("COACH_FLAG_HIGH_GLUCOSE_MGDL", "140")
		cfg, err := flags.NewConfig()
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.HighGlucoseMgdL).To(Equal(140.0))
		Expect(cfg.ElevatedBPDays).To(Equal(2))

		detector = flags.NewDetector(cfg)
		Expect(ofType(detect([]entries.MetricEntry{glucose(0, 130), glucose(1, 130), glucose(2, 130)}), flags.TypeHighGlucose)).To(BeNil())
	})
})
