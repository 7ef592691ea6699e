// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry

import (
	"context"

	"github.com/Martinsos/retry-retry/internal/wallclock"
)

type (
	// Task represents a function to retry. A nil return reports success and
	// stops the retries. An error matching ErrRetry (see Retryable) requests
	// another attempt. Any other error is terminal and is returned to the
	// caller unchanged.
	Task func(ctx context.Context) error

	// TaskWithResult represents a function to retry that produces a value
	// on success.
	TaskWithResult[T any] func(ctx context.Context) (T, error)
)

// Do invokes task until it succeeds or fails terminally, pausing between
// attempts per the configured strategy. When a configured budget of tries or
// elapsed time runs out first, it returns the configured limit error
// (ErrLimitReached by default); a terminal error from the task itself is
// returned to the caller unchanged. Attempts are strictly sequential; the
// task is never invoked concurrently with itself. Cancelling ctx during a
// pause stops the retries with ctx.Err.
func Do(ctx context.Context, task Task, opts ...Option) error {
	if task == nil {
		return &InvalidArgumentError{message: "task cannot be nil"}
	}

	var opt Options
	opt.Apply(opts)
	opt = opt.resolved()

	l := newLogger(opt.Logger)
	l.options(ctx, opt)

	start := wallclock.Instance.Now()
	for attempt := uint64(1); ; attempt++ {
		if opt.MaxTries > 0 && attempt > opt.MaxTries {
			l.limit(ctx, attempt-1, opt.LimitError)
			return opt.LimitError
		}

		l.attempt(ctx, attempt)
		err := task(ctx)
		if err == nil {
			l.complete(ctx, attempt, nil)
			return nil
		}
		if !opt.RetryOn(err) {
			l.complete(ctx, attempt, err)
			return err
		}

		interval := opt.Strategy.Interval(opt.Pause, attempt)
		if interval < 0 {
			interval = 0
		}

		// The budget is checked before committing to the pause, so a pause
		// that would overshoot it is never entered.
		if opt.MaxTotalTime > 0 &&
			interval > opt.MaxTotalTime-wallclock.Instance.Now().Sub(start) {
			l.limit(ctx, attempt, opt.LimitError)
			return opt.LimitError
		}

		l.scheduled(ctx, attempt, err, interval)
		select {
		case <-wallclock.Instance.After(interval):
		case <-ctx.Done():
			l.complete(ctx, attempt, ctx.Err())
			return ctx.Err()
		}
	}
}

// DoWithResult invokes task with the same retry policy as Do, returning the
// task's value on success and the zero value of T on failure.
func DoWithResult[T any](
	ctx context.Context,
	task TaskWithResult[T],
	opts ...Option,
) (T, error) {
	var result T
	if task == nil {
		return result, &InvalidArgumentError{message: "task cannot be nil"}
	}

	err := Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = task(ctx)
		return err
	}, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Signaled adapts a task that reports its outcome as a retry flag alongside
// the error. A nil error is success regardless of the flag; a non-nil error
// with shouldRetry true becomes a retry request preserving the cause; any
// other error is terminal.
func Signaled(
	task func(ctx context.Context) (shouldRetry bool, err error),
) Task {
	if task == nil {
		return nil
	}
	return func(ctx context.Context) error {
		shouldRetry, err := task(ctx)
		switch {
		case err == nil:
			return nil
		case shouldRetry:
			return Retryable(err)
		default:
			return err
		}
	}
}
