// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package wallclock

import "time"

type (
	// WallClock abstracts the subset of package time used by the retry loop:
	// a monotonic time source for elapsed-time accounting and a delay
	// primitive for the pause between attempts.
	WallClock interface {
		After(d time.Duration) <-chan time.Time
		Now() time.Time
	}

	wallClock struct{}
)

// After indirects time.After.
func (wallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Now indirects time.Now.
func (wallClock) Now() time.Time {
	return time.Now()
}

// Instance is a WallClock singleton used for indirect time-based references
// to package time. Test code can set the instance to interpose on functions
// and control apparent time.
var Instance WallClock = wallClock{}
