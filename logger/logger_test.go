package logger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"

	"github.com/metabolic-health/coach/logger"
)

var _ = Describe("Logger", func() {
	It("logs at debug by default", func() {
		GinkgoT().Setenv("LOG_LEVEL", "debug")
		log, err := logger.NewProductionLogger()
		Expect(err).ToNot(HaveOccurred())
		Expect(log.Core().Enabled(zapcore.DebugLevel)).To(BeTrue())
		Expect(logger.Suggar(log)).ToNot(BeNil())
	})

	It("reads the level from LOG_LEVEL", func() {
		GinkgoT().Setenv("LOG_LEVEL", "warn")
		log, err := logger.NewProductionLogger()
		Expect(err).ToNot(HaveOccurred())
		Expect(log.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
		Expect(log.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
	})

	It("rejects unknown levels", func() {
		GinkgoT().Setenv("LOG_LEVEL", "chatty")
		_, err := logger.NewProductionLogger()
		Expect(err).To(HaveOccurred())
	})
})
