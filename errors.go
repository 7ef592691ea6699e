// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry

import (
	"errors"
	"fmt"
)

// Reserved signal values, created once at package initialization and
// compared by identity.
var (
	// ErrRetry is the reserved retry request. A task returns ErrRetry, or an
	// error wrapped by Retryable, to indicate that the attempt failed but
	// should be tried again. It is never returned by Do itself.
	ErrRetry = errors.New("retry requested")

	// ErrLimitReached is returned by Do when a configured try-count or time
	// budget is exhausted before the task succeeds or fails terminally. It
	// may be substituted per call with WithLimitError.
	ErrLimitReached = errors.New("retry limit reached")
)

// Retryable marks an error as a retry request while preserving the
// underlying cause. The result matches ErrRetry under errors.Is and unwraps
// to err. Retryable(nil) returns ErrRetry itself.
func Retryable(err error) error {
	if err == nil {
		return ErrRetry
	}
	return &retryableError{err}
}

// IsRetryable reports whether err requests a retry. It is the classifier
// used when no RetryOn predicate is configured.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetry)
}

type retryableError struct{ wrapped error }

func (e *retryableError) Error() string {
	return fmt.Sprintf("retry requested: %v", e.wrapped)
}

func (e *retryableError) Unwrap() error {
	return e.wrapped
}

func (e *retryableError) Is(target error) bool {
	return target == ErrRetry
}

// InvalidArgumentError indicates that the user has provided an invalid
// argument or setting value. It may wrap an underlying error using Go
// standard error wrapping.
type InvalidArgumentError struct {
	wrapped error
	message string
}

func (e *InvalidArgumentError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.wrapped
}
