// Package log provides structured logging helpers for the enforcer.
package log

import (
	"context"
	"log/slog"
	"os"

	slogctx "github.com/veqryn/slog-context"
)

// Init installs a JSON slog handler that emits context-carried attributes.
// Level is parsed leniently; unknown values fall back to info.
func Init(level string) {
	handler := slogctx.NewHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromString(level)}),
		nil,
	)
	slog.SetDefault(slog.New(handler))
}

func levelFromString(l string) slog.Level {
	switch l {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InjectRun attaches the run correlation ID carried by every record of a run.
func InjectRun(ctx context.Context, runID string) context.Context {
	return slogctx.With(ctx, slog.String("runId", runID))
}

// InjectAccount attaches the audited account once its ID is resolved.
func InjectAccount(ctx context.Context, accountID string) context.Context {
	return slogctx.With(ctx, slog.String("accountId", accountID))
}

// InjectUser attaches the user currently being processed.
func InjectUser(ctx context.Context, userName string) context.Context {
	return slogctx.With(ctx, slog.String("userName", userName))
}

// InjectKey attaches the access key currently being classified.
func InjectKey(ctx context.Context, accessKeyID string) context.Context {
	return slogctx.With(ctx, slog.String("accessKeyId", accessKeyID))
}

// ErrAttr renders an error under the canonical error key, for records
// logged below error level.
func ErrAttr(err error) slog.Attr {
	return slogctx.Err(err)
}

func Debug(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelInfo, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...slog.Attr) {
	args = append(args, slogctx.Err(err))

	slogctx.LogAttrs(ctx, slog.LevelError, msg, args...)
}
