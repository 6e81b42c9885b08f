// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"time"
)

const EVENTUALLY_LOCAL_TIMEOUT = 1 * time.Second

const iterationsConsistently = 50
const interval = 5 * time.Millisecond

func Eventually(timeout time.Duration, f func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if f() {
			return true
		}
		time.Sleep(interval)
	}
	return f()
}

func Consistently(f func() bool) bool {
	for i := 0; i < iterationsConsistently; i++ {
		if !f() {
			return false
		}
		time.Sleep(interval)
	}
	return true
}
