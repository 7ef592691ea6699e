// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	retry "github.com/Martinsos/retry-retry"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type Mock struct {
	mock.Mock
}

var (
	errRetryable = retry.Retryable(errors.New("connection reset"))
	errTerminal  = errors.New("this error is terminal")
)

// Mocked retry executed function.
func (m *Mock) Task(context.Context) error {
	args := m.Called()
	return args.Error(0)
}

// Mocked value-producing variant.
func (m *Mock) Lookup(context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// Mocked task using the signaled convention.
func (m *Mock) Signaled(context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func TestNoRetry(t *testing.T) {
	m := new(Mock)
	m.On("Task").Return(nil)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task)

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Task", 1)
}

func TestRetryUntilSuccess(t *testing.T) {
	m := new(Mock)
	m.On("Task").Twice().Return(errRetryable)
	m.On("Task").Once().Return(nil)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task)

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Task", 3)
}

func TestTerminalErrorPropagatesVerbatim(t *testing.T) {
	m := new(Mock)
	m.On("Task").Once().Return(errRetryable)
	m.On("Task").Once().Return(errTerminal)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task)

	require.Same(t, errTerminal, err)
	require.NotErrorIs(t, err, retry.ErrLimitReached)
	m.AssertNumberOfCalls(t, "Task", 2)
}

func TestMaxTries(t *testing.T) {
	m := new(Mock)
	m.On("Task").Return(errRetryable)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task, retry.WithMaxTries(3))

	require.ErrorIs(t, err, retry.ErrLimitReached)
	m.AssertNumberOfCalls(t, "Task", 3)
}

// A terminal failure on the last permitted try returns that failure, not the
// limit error.
func TestTerminalErrorWinsOverLimit(t *testing.T) {
	m := new(Mock)
	m.On("Task").Once().Return(errRetryable)
	m.On("Task").Once().Return(errTerminal)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task, retry.WithMaxTries(2))

	require.Same(t, errTerminal, err)
	m.AssertNumberOfCalls(t, "Task", 2)
}

func TestNilTask(t *testing.T) {
	ctx := context.Background()

	err := retry.Do(ctx, nil)

	var argErr *retry.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestRetryOnPredicate(t *testing.T) {
	m := new(Mock)
	m.On("Task").Twice().Return(errTerminal)
	m.On("Task").Once().Return(nil)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task, retry.WithRetryOn(func(err error) bool {
		return errors.Is(err, errTerminal)
	}))

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Task", 3)
}

func TestRetryOnPredicateDeclines(t *testing.T) {
	m := new(Mock)
	m.On("Task").Return(errRetryable)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task, retry.WithRetryOn(func(error) bool {
		return false
	}))

	require.Same(t, errRetryable, err)
	m.AssertNumberOfCalls(t, "Task", 1)
}

func TestLimitErrorSubstitution(t *testing.T) {
	errBudget := errors.New("connect budget exhausted")

	m := new(Mock)
	m.On("Task").Return(errRetryable)

	ctx := context.Background()

	err := retry.Do(ctx, m.Task,
		retry.WithMaxTries(2),
		retry.WithLimitError(errBudget),
	)

	require.Same(t, errBudget, err)
	require.NotErrorIs(t, err, retry.ErrLimitReached)
	m.AssertNumberOfCalls(t, "Task", 2)
}

func TestContextCancelledDuringPause(t *testing.T) {
	m := new(Mock)
	m.On("Task").Return(errRetryable)

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	defer timer.Stop()

	err := retry.Do(ctx, m.Task, retry.WithPause(time.Minute))

	require.ErrorIs(t, err, context.Canceled)
	m.AssertNumberOfCalls(t, "Task", 1)
}

func TestDoWithResult(t *testing.T) {
	m := new(Mock)
	m.On("Lookup").Twice().Return("", errRetryable)
	m.On("Lookup").Once().Return("value", nil)

	ctx := context.Background()

	result, err := retry.DoWithResult(ctx, m.Lookup)

	require.NoError(t, err)
	require.Equal(t, "value", result)
	m.AssertNumberOfCalls(t, "Lookup", 3)
}

func TestDoWithResultZeroOnFailure(t *testing.T) {
	m := new(Mock)
	m.On("Lookup").Return("partial", errTerminal)

	ctx := context.Background()

	result, err := retry.DoWithResult(ctx, m.Lookup)

	require.Same(t, errTerminal, err)
	require.Zero(t, result)
	m.AssertNumberOfCalls(t, "Lookup", 1)
}

func TestDoWithResultNilTask(t *testing.T) {
	ctx := context.Background()

	result, err := retry.DoWithResult[int](ctx, nil)

	var argErr *retry.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	require.Zero(t, result)
}

func TestSignaled(t *testing.T) {
	m := new(Mock)
	m.On("Signaled").Twice().Return(true, errors.New("not ready"))
	m.On("Signaled").Once().Return(false, nil)

	ctx := context.Background()

	err := retry.Do(ctx, retry.Signaled(m.Signaled))

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Signaled", 3)
}

func TestSignaledTerminal(t *testing.T) {
	m := new(Mock)
	m.On("Signaled").Return(false, errTerminal)

	ctx := context.Background()

	err := retry.Do(ctx, retry.Signaled(m.Signaled))

	require.Same(t, errTerminal, err)
	m.AssertNumberOfCalls(t, "Signaled", 1)
}

func TestSignaledNilTask(t *testing.T) {
	ctx := context.Background()

	err := retry.Do(ctx, retry.Signaled(nil))

	var argErr *retry.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
}

// Omitting options entirely behaves the same as passing explicit defaults.
func TestDefaultOptionsEquivalence(t *testing.T) {
	ctx := context.Background()

	run := func(opts ...retry.Option) (int, error) {
		calls := 0
		err := retry.Do(ctx, func(context.Context) error {
			calls++
			if calls < 5 {
				return retry.ErrRetry
			}
			return nil
		}, opts...)
		return calls, err
	}

	implicitCalls, implicitErr := run()
	explicitCalls, explicitErr := run(
		retry.WithPause(0),
		retry.WithMaxTries(0),
		retry.WithMaxTotalTime(0),
		retry.WithStrategy(retry.Linear{}),
		retry.WithRetryOn(retry.IsRetryable),
	)

	require.NoError(t, implicitErr)
	require.NoError(t, explicitErr)
	require.Equal(t, implicitCalls, explicitCalls)
	require.Equal(t, 5, implicitCalls)
}

func TestOptionsAppliedWholesale(t *testing.T) {
	m := new(Mock)
	m.On("Task").Return(errRetryable)

	ctx := context.Background()

	opt := &retry.Options{MaxTries: 2}
	err := retry.Do(ctx, m.Task, opt)

	require.ErrorIs(t, err, retry.ErrLimitReached)
	m.AssertNumberOfCalls(t, "Task", 2)
}

func TestLinearTiming(t *testing.T) {
	m := new(Mock)
	m.On("Task").Twice().Return(errRetryable)
	m.On("Task").Once().Return(nil)

	ctx := context.Background()

	start := time.Now()
	err := retry.Do(ctx, m.Task, retry.WithPause(50*time.Millisecond))
	elapsed := time.Since(start)

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Task", 3)
	require.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	require.Less(t, elapsed, time.Second)
}

func TestExponentialTiming(t *testing.T) {
	m := new(Mock)
	m.On("Task").Twice().Return(errRetryable)
	m.On("Task").Once().Return(nil)

	ctx := context.Background()

	start := time.Now()
	err := retry.Do(ctx, m.Task,
		retry.WithPause(50*time.Millisecond),
		retry.WithStrategy(retry.Exponential{}),
	)
	elapsed := time.Since(start)

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Task", 3)
	require.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
	require.Less(t, elapsed, time.Second)
}

// The custom strategy sees 1-based attempt counts and negative results are
// treated as a zero pause.
func TestCustomStrategy(t *testing.T) {
	m := new(Mock)
	m.On("Task").Twice().Return(errRetryable)
	m.On("Task").Once().Return(nil)

	ctx := context.Background()

	var attempts []uint64
	err := retry.Do(ctx, m.Task,
		retry.WithStrategy(retry.StrategyFunc(func(attempt uint64) time.Duration {
			attempts = append(attempts, attempt)
			return -time.Second
		})),
	)

	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Task", 3)
	require.Equal(t, []uint64{1, 2}, attempts)
}
