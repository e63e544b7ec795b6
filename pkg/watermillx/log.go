package watermillx

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

var slogToOTelSeverity = []struct {
	slog slog.Level
	otel log.Severity
}{
	{slog.LevelError, log.SeverityError},
	{slog.LevelWarn, log.SeverityWarn},
	{slog.LevelInfo, log.SeverityInfo},
	{slog.LevelDebug, log.SeverityDebug},
}

// slogAdapter bridges watermill logging onto slog. Records below the severity
// the OTel logger provider accepts are dropped, which keeps watermill's very
// chatty trace output off unless explicitly enabled.
type slogAdapter struct {
	logger   *slog.Logger
	minLevel slog.Level
	otel     log.Logger
}

func NewSlogAdapter(logger *slog.Logger, minLevel slog.Level) watermill.LoggerAdapter {
	return &slogAdapter{
		logger:   logger,
		minLevel: minLevel,
		otel:     global.GetLoggerProvider().Logger("watermill"),
	}
}

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log(slog.LevelError, msg, fields.Add(watermill.LogFields{"error": err}))
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log(slog.LevelInfo, msg, fields)
}

func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log(slog.LevelDebug, msg, fields)
}

func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	if a.minLevel < slog.LevelDebug {
		a.log(slog.LevelDebug, msg, fields)
	}
}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{
		logger:   a.logger.With(attrs(fields)...),
		minLevel: a.minLevel,
		otel:     a.otel,
	}
}

func (a *slogAdapter) log(level slog.Level, msg string, fields watermill.LogFields) {
	ctx := context.Background()

	severity := log.SeverityTrace
	for _, m := range slogToOTelSeverity {
		if level >= m.slog {
			severity = m.otel
			break
		}
	}
	if !a.otel.Enabled(ctx, log.EnabledParameters{Severity: severity}) {
		return
	}

	a.logger.Log(ctx, level, msg, attrs(fields)...)
}

func attrs(fields watermill.LogFields) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}
