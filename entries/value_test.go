package entries_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/metabolic-health/coach/entries"
)

var _ = Describe("MetricValue", func() {
	Describe("ParseMetricValue", func() {
		It("reads the value key of single value metrics", func() {
			v := entries.ParseMetricValue(entries.MetricTypeWeight, map[string]interface{}{"value": 182.4})
			Expect(v.Kind()).To(Equal(entries.ValueKindScalar))
			value, ok := v.Scalar()
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(182.4))
		})

		It("treats 0 as a present value", func() {
			v := entries.ParseMetricValue(entries.MetricTypeKetones, map[string]interface{}{"value": 0, "fasting": 95})
			value, ok := v.Scalar()
			Expect(ok).To(BeTrue())
			Expect(value).To(BeZero())
		})

		It("falls back to the legacy fasting key", func() {
			v := entries.ParseMetricValue(entries.MetricTypeGlucose, map[string]interface{}{"fasting": 98})
			value, ok := v.Scalar()
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(98.0))
		})

		It("decodes numeric strings", func() {
			v := entries.ParseMetricValue(entries.MetricTypeGlucose, map[string]interface{}{"value": "104"})
			Expect(v.Number()).To(Equal(104.0))
		})

		It("reads blood pressure pairs", func() {
			v := entries.ParseMetricValue(entries.MetricTypeBP, map[string]interface{}{"systolic": 128, "diastolic": 82})
			systolic, diastolic, ok := v.BloodPressure()
			Expect(ok).To(BeTrue())
			Expect(systolic).To(Equal(128.0))
			Expect(diastolic).To(Equal(82.0))
			Expect(v.Number()).To(Equal(128.0))
		})

		DescribeTable("decodes only the keys the metric type reads",
			func(t entries.MetricType, raw map[string]interface{}, expected float64) {
				v := entries.ParseMetricValue(t, raw)
				Expect(v.IsValid()).To(BeTrue())
				Expect(v.Number()).To(Equal(expected))
			},
			Entry("glucose with a malformed fasting key", entries.MetricTypeGlucose, map[string]interface{}{"value": 120, "fasting": "yes"}, 120.0),
			Entry("weight next to a junk systolic key", entries.MetricTypeWeight, map[string]interface{}{"value": 250, "systolic": "n/a"}, 250.0),
			Entry("blood pressure next to a junk value key", entries.MetricTypeBP, map[string]interface{}{"systolic": 130, "diastolic": 85, "value": true}, 130.0),
			Entry("a null value falling back to fasting", entries.MetricTypeGlucose, map[string]interface{}{"value": nil, "fasting": 97}, 97.0),
		)

		DescribeTable("degrades malformed payloads to an invalid value",
			func(t entries.MetricType, raw map[string]interface{}) {
				v := entries.ParseMetricValue(t, raw)
				Expect(v.IsValid()).To(BeFalse())
				Expect(v.Number()).To(BeZero())
				_, ok := v.Scalar()
				Expect(ok).To(BeFalse())
			},
			Entry("nil payload", entries.MetricTypeWeight, nil),
			Entry("empty payload", entries.MetricTypeWeight, map[string]interface{}{}),
			Entry("non numeric value", entries.MetricTypeGlucose, map[string]interface{}{"value": "high"}),
			Entry("not a number", entries.MetricTypeGlucose, map[string]interface{}{"value": math.NaN()}),
			Entry("infinite", entries.MetricTypeWeight, map[string]interface{}{"value": math.Inf(1)}),
			Entry("blood pressure without diastolic", entries.MetricTypeBP, map[string]interface{}{"systolic": 120}),
			Entry("blood pressure as a scalar", entries.MetricTypeBP, map[string]interface{}{"value": 120}),
			Entry("boolean value", entries.MetricTypeGlucose, map[string]interface{}{"value": true}),
			Entry("boolean fasting", entries.MetricTypeGlucose, map[string]interface{}{"fasting": false}),
			Entry("blank string", entries.MetricTypeWeight, map[string]interface{}{"value": "  "}),
			Entry("nested object", entries.MetricTypeWeight, map[string]interface{}{"value": map[string]interface{}{"lbs": 180}}),
			Entry("boolean systolic", entries.MetricTypeBP, map[string]interface{}{"systolic": true, "diastolic": 80}),
		)
	})

	DescribeTable("DecodeNumber",
		func(v interface{}, expected float64, ok bool) {
			value, decoded := entries.DecodeNumber(v)
			Expect(decoded).To(Equal(ok))
			Expect(value).To(Equal(expected))
		},
		Entry("float", 5.5, 5.5, true),
		Entry("int32 from bson", int32(101), 101.0, true),
		Entry("numeric string", " 104 ", 104.0, true),
		Entry("json number", json.Number("98.6"), 98.6, true),
		Entry("true", true, 0.0, false),
		Entry("nil", nil, 0.0, false),
		Entry("list", []interface{}{120}, 0.0, false),
	)

	Describe("JSON", func() {
		It("writes the valueJson shape", func() {
			b, err := json.Marshal(entries.BloodPressureValue(120, 80))
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(MatchJSON(`{"systolic":120,"diastolic":80}`))

			b, err = json.Marshal(entries.ScalarValue(5.5))
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(MatchJSON(`{"value":5.5}`))
		})

		It("never fails on malformed input", func() {
			var v entries.MetricValue
			Expect(json.Unmarshal([]byte(`[1,2]`), &v)).To(Succeed())
			Expect(v.IsValid()).To(BeFalse())
		})

		It("reads blood pressure by its keys", func() {
			var v entries.MetricValue
			Expect(json.Unmarshal([]byte(`{"systolic":135,"diastolic":88}`), &v)).To(Succeed())
			Expect(v.Kind()).To(Equal(entries.ValueKindBloodPressure))
			Expect(v.Diastolic()).To(Equal(88.0))
		})
	})
})
