// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/iancoleman/strcase"
)

// options logs the effective configuration of one retry call.
func (l *logger) options(ctx context.Context, opt Options) {
	// This is expensive; bail out if we don't need it.
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{slog.String("id", l.correlation)}
	attrs = append(attrs, reflectAttrs(reflect.ValueOf(opt))...)
	l.Log(ctx, slog.LevelDebug, "retry options", attrs...)
}

func reflectAttrs(val reflect.Value) []slog.Attr {
	typ := val.Type()
	num := typ.NumField()
	var attrs []slog.Attr
	for i := 0; i < num; i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}

		attrs = append(attrs, reflectAttr(
			strcase.ToSnake(f.Name),
			val.Field(i),
		)...)
	}
	return attrs
}

func reflectAttr(name string, val reflect.Value) []slog.Attr {
	// Ignore zero values to keep the log cleaner.
	if val.Kind() == reflect.Invalid || val.IsZero() {
		return nil
	}

	switch v := val.Interface().(type) {
	case time.Duration:
		return []slog.Attr{slog.Duration(name, v)}

	case Strategy:
		return []slog.Attr{slog.String(name, fmt.Sprint(v))}

	case error:
		return []slog.Attr{slog.String(name, v.Error())}

	case *slog.Logger:
		// Logging the logger is not useful.
		return nil
	}

	// Functions have no loggable value; record their presence.
	if val.Kind() == reflect.Func {
		return []slog.Attr{slog.Bool(name, true)}
	}

	return []slog.Attr{slog.Any(name, val.Interface())}
}
