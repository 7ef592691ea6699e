package retry

import (
	"log/slog"
	"time"
)

type (
	// Option represents a single configuration option for a retry call.
	Option interface {
		retry(*Options)
	}

	// Options are the resolved configuration values for a retry call. The
	// zero value is the default configuration, retrying only on the
	// reserved retry request with no pause and no limits. Options itself
	// satisfies Option, so a whole set can be applied at once.
	Options struct {
		// Pause is the base pause between attempts. Negative values are
		// treated as zero.
		Pause time.Duration

		// MaxTries caps the number of attempts. Zero means no limit.
		MaxTries uint64

		// MaxTotalTime caps the elapsed wall-clock time since the first
		// attempt began. Zero means no limit; negative values are treated
		// as zero.
		MaxTotalTime time.Duration

		// Strategy computes the pause before each retry. Defaults to
		// Linear.
		Strategy Strategy

		// RetryOn decides whether a task failure should be retried.
		// Defaults to IsRetryable.
		RetryOn func(error) bool

		// LimitError is returned when a retry budget is exhausted.
		// Defaults to ErrLimitReached.
		LimitError error

		// Logger receives structured records of attempts and outcomes. The
		// default nil logger disables logging.
		Logger *slog.Logger
	}

	// WithPause sets the base pause between attempts.
	WithPause time.Duration

	// WithMaxTries caps the number of attempts.
	WithMaxTries uint64

	// WithMaxTotalTime caps the elapsed time across all attempts.
	WithMaxTotalTime time.Duration

	// These options are not used directly; see the constructors below.
	withStrategy   struct{ Strategy }
	withRetryOn    struct{ fn func(error) bool }
	withLimitError struct{ err error }
	withLogger     struct{ *slog.Logger }
)

func (o WithPause) retry(opt *Options) {
	opt.Pause = time.Duration(o)
}

func (o WithMaxTries) retry(opt *Options) {
	opt.MaxTries = uint64(o)
}

func (o WithMaxTotalTime) retry(opt *Options) {
	opt.MaxTotalTime = time.Duration(o)
}

// WithStrategy sets the backoff strategy used between attempts.
func WithStrategy(strategy Strategy) Option {
	return withStrategy{strategy}
}

func (o withStrategy) retry(opt *Options) {
	opt.Strategy = o.Strategy
}

// WithRetryOn sets the predicate deciding whether a task failure should be
// retried.
func WithRetryOn(fn func(error) bool) Option {
	return withRetryOn{fn}
}

func (o withRetryOn) retry(opt *Options) {
	opt.RetryOn = o.fn
}

// WithLimitError substitutes the error returned when a retry budget is
// exhausted.
func WithLimitError(err error) Option {
	return withLimitError{err}
}

func (o withLimitError) retry(opt *Options) {
	opt.LimitError = o.err
}

// WithLogger enables logging with the provided slog logger.
func WithLogger(logger *slog.Logger) Option {
	return withLogger{logger}
}

func (o withLogger) retry(opt *Options) {
	opt.Logger = o.Logger
}

// Apply resolves the provided list of options.
func (o *Options) Apply(opts []Option, rest ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.retry(o)
		}
	}
	for _, opt := range rest {
		if opt != nil {
			opt.retry(o)
		}
	}
}

func (o *Options) retry(opt *Options) {
	if o != nil {
		*opt = *o
	}
}

// resolved returns a copy with defaults applied and values clamped.
func (o Options) resolved() Options {
	if o.Pause < 0 {
		o.Pause = 0
	}
	if o.MaxTotalTime < 0 {
		o.MaxTotalTime = 0
	}
	if o.Strategy == nil {
		o.Strategy = Linear{}
	}
	if o.RetryOn == nil {
		o.RetryOn = IsRetryable
	}
	if o.LimitError == nil {
		o.LimitError = ErrLimitReached
	}
	return o
}
