// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the process-wide logrus logger and hands out
// request-scoped entries.
package logger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKey string

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey ctxKey = "requestId"

// SlowThreshold is the duration above which Track reports an operation as slow.
var SlowThreshold = 2 * time.Second

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
}

// Configure sets the level, the output format ("text" or "json"), and the
// writer of the standard logger.
func Configure(level, format string, w io.Writer) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)

	switch format {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q: want text or json", format)
	}

	if w != nil {
		logrus.SetOutput(w)
	}
	return nil
}

// For returns a log entry carrying the request id stored in ctx, if any.
func For(ctx context.Context) *logrus.Entry {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("request_id", id)
}

// ContextWithID stores id in ctx for later use by For.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithNewID stores a freshly generated request id in ctx unless one is
// already present.
func WithNewID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(RequestIDKey).(string); ok {
		return ctx
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ContextWithID(ctx, id.String())
}

// Track logs msg with the elapsed time when the returned func is called.
//
//	defer logger.Track(ctx, "search_books")()
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())

		if dur > SlowThreshold {
			entry.Warnf("%s completed (slow)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}
