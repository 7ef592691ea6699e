// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Martinsos/retry-retry/internal/log"
	"github.com/google/uuid"
)

// logger records the progress of one retry call. The correlation ID ties the
// call's records together when several retries run concurrently.
type logger struct {
	log.Logger
	correlation string
}

func newLogger(lg *slog.Logger) logger {
	l := logger{Logger: log.Wrap(lg)}
	if lg != nil {
		l.correlation = uuid.Must(uuid.NewV7()).String()
	}
	return l
}

func (l *logger) attempt(ctx context.Context, attempt uint64) {
	l.Log(ctx, slog.LevelInfo, "retry",
		slog.String("id", l.correlation),
		slog.Uint64("attempt", attempt),
	)
}

func (l *logger) scheduled(
	ctx context.Context,
	attempt uint64,
	err error,
	interval time.Duration,
) {
	l.Log(ctx, slog.LevelInfo, "retry scheduled",
		slog.String("id", l.correlation),
		slog.Uint64("attempt", attempt),
		slog.String("error", err.Error()),
		slog.Duration("interval", interval),
	)
}

func (l *logger) complete(ctx context.Context, attempt uint64, err error) {
	if err != nil {
		l.Log(ctx, slog.LevelInfo, "retry failed",
			slog.String("id", l.correlation),
			slog.Uint64("attempt", attempt),
			slog.String("error", err.Error()),
		)
	} else {
		l.Log(ctx, slog.LevelInfo, "retry succeeded",
			slog.String("id", l.correlation),
			slog.Uint64("attempt", attempt),
		)
	}
}

func (l *logger) limit(ctx context.Context, tries uint64, err error) {
	l.Log(ctx, slog.LevelInfo, "retry limit reached",
		slog.String("id", l.correlation),
		slog.Uint64("tries", tries),
		slog.String("error", err.Error()),
	)
}
