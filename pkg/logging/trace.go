package logging

import "log/slog"

// EnableTrace turns on per-item debug logs such as individual region
// lookups. Init sets it when the server level is TRACE.
var EnableTrace = false

// Trace logs at DEBUG level when tracing is enabled.
func Trace(logger *slog.Logger, msg string, args ...any) {
	if EnableTrace {
		logger.Debug(msg, args...)
	}
}

// TraceDefault is Trace on the default logger.
func TraceDefault(msg string, args ...any) {
	if EnableTrace {
		slog.Debug(msg, args...)
	}
}
