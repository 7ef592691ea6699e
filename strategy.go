// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry

import (
	"math"
	"time"
)

// maxExponent caps the exponential doubling so that extreme attempt counts
// saturate instead of overflowing.
const maxExponent = 32

type (
	// Strategy computes the pause before the next attempt. The base is the
	// configured pause interval and attempt is the 1-based number of tries
	// completed so far.
	Strategy interface {
		Interval(base time.Duration, attempt uint64) time.Duration
	}

	// Linear pauses for the constant base interval between attempts. It is
	// the default strategy.
	Linear struct{}

	// Exponential doubles the pause on each attempt, starting from the base
	// interval: base, 2*base, 4*base, and so on.
	Exponential struct{}

	// StrategyFunc adapts a caller-supplied function into a Strategy. The
	// function receives the 1-based attempt count and returns the full
	// pause; the configured base interval is ignored and negative results
	// are treated as zero.
	StrategyFunc func(attempt uint64) time.Duration
)

// Interval returns the base interval unchanged.
func (Linear) Interval(base time.Duration, _ uint64) time.Duration {
	return base
}

func (Linear) String() string { return "linear" }

// Interval returns base doubled attempt-1 times, saturating on overflow.
func (Exponential) Interval(
	base time.Duration,
	attempt uint64,
) time.Duration {
	if base <= 0 {
		return 0
	}

	exponent := attempt - 1
	if exponent > maxExponent {
		exponent = maxExponent
	}
	if base > math.MaxInt64>>exponent {
		return math.MaxInt64
	}
	return base << exponent
}

func (Exponential) String() string { return "exponential" }

// Interval invokes the wrapped function with the attempt count.
func (f StrategyFunc) Interval(_ time.Duration, attempt uint64) time.Duration {
	return f(attempt)
}

func (StrategyFunc) String() string { return "custom" }
