// Package libtracker provides lightweight operation tracking for services.
// Services wrap themselves in decorators that call Start at the top of each
// operation; the returned funcs report errors, record state changes, and close
// the span.
package libtracker

import (
	"context"
	"log/slog"
	"time"
)

// ActivityTracker observes service operations. Start returns three funcs:
// reportErr records a failure, reportChange records a state mutation with an
// identifying subject, and end closes the operation span. kvArgs are
// alternating key/value pairs of operation metadata.
type ActivityTracker interface {
	Start(ctx context.Context, operation, subject string, kvArgs ...any) (reportErr func(error), reportChange func(id string, data any), end func())
}

// NoopTracker drops everything. Used wherever tracking is optional.
type NoopTracker struct{}

func (NoopTracker) Start(context.Context, string, string, ...any) (func(error), func(string, any), func()) {
	return func(error) {}, func(string, any) {}, func() {}
}

// ChainedTracker fans every event out to all member trackers in order.
type ChainedTracker []ActivityTracker

func (c ChainedTracker) Start(ctx context.Context, operation, subject string, kvArgs ...any) (func(error), func(string, any), func()) {
	reportErrs := make([]func(error), 0, len(c))
	reportChanges := make([]func(string, any), 0, len(c))
	ends := make([]func(), 0, len(c))
	for _, t := range c {
		re, rc, end := t.Start(ctx, operation, subject, kvArgs...)
		reportErrs = append(reportErrs, re)
		reportChanges = append(reportChanges, rc)
		ends = append(ends, end)
	}
	return func(err error) {
			for _, re := range reportErrs {
				re(err)
			}
		}, func(id string, data any) {
			for _, rc := range reportChanges {
				rc(id, data)
			}
		}, func() {
			for _, end := range ends {
				end()
			}
		}
}

type logActivityTracker struct {
	logger *slog.Logger
}

// NewLogActivityTracker emits one structured log line per tracked event via
// slog, stamped with the request/trace IDs found in ctx.
func NewLogActivityTracker(logger *slog.Logger) ActivityTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &logActivityTracker{logger: logger}
}

func (t *logActivityTracker) Start(ctx context.Context, operation, subject string, kvArgs ...any) (func(error), func(string, any), func()) {
	start := time.Now().UTC()
	logger := t.logger.With(
		"operation", operation,
		"subject", subject,
	)
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok && requestID != "" {
		logger = logger.With("request_id", requestID)
	} else {
		// A missing request ID means an entry-point skipped WithNewRequestID.
		logger = logger.With("request_id", "SERVERBUG")
	}
	if traceID, ok := ctx.Value(ContextKeyTraceID).(string); ok && traceID != "" {
		logger = logger.With("trace_id", traceID)
	}
	if len(kvArgs) > 0 {
		logger = logger.With(kvArgs...)
	}

	logger.DebugContext(ctx, "operation started")

	reportErr := func(err error) {
		logger.ErrorContext(ctx, "operation failed", "error", err)
	}
	reportChange := func(id string, data any) {
		logger.InfoContext(ctx, "state changed", "entity_id", id, "data", data)
	}
	end := func() {
		logger.DebugContext(ctx, "operation finished", "duration", time.Since(start).String())
	}
	return reportErr, reportChange, end
}
