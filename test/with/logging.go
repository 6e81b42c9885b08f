// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package with

import (
	"github.com/orbs-network/scribe/log"
	"testing"
)

type LoggingHarness struct {
	Logger     log.Logger
	testOutput *log.TestOutput
	T          testing.TB
}

func (h *LoggingHarness) AllowErrorsMatching(pattern string) {
	h.testOutput.AllowErrorsMatching(pattern)
}

func Logging(tb testing.TB, f func(harness *LoggingHarness)) {
	testOutput := log.NewTestOutput(tb, log.NewHumanReadableFormatter())
	h := &LoggingHarness{
		Logger:     log.GetLogger().WithOutput(testOutput),
		testOutput: testOutput,
		T:          tb,
	}
	defer testOutput.TestTerminated()
	f(h)
	RequireNoUnexpectedErrors(tb, testOutput)
}

type Fataler interface {
	Fatal(args ...interface{})
}

type ErrorTracker interface {
	HasErrors() bool
}

func RequireNoUnexpectedErrors(f Fataler, errorTracker ErrorTracker) {
	if errorTracker.HasErrors() {
		f.Fatal("Test failed; encountered unexpected errors")
	}
}
