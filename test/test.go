package test

import (
	"path"
	"runtime"
	"strings"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Test runs the specs of the calling package in a suite named after it, so
// units_test.TestSuite runs the "units" suite.
func Test(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, suiteName(2))
}

func suiteName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "coach"
	}
	pkg, _, _ := strings.Cut(path.Base(runtime.FuncForPC(pc).Name()), ".")
	return strings.TrimSuffix(pkg, "_test")
}
