// Package logger provides structured logging functionality for the application.
//
// It uses the standard library log/slog package to emit JSON records at a
// configurable level, and carries request-scoped loggers through
// context.Context so handlers and services can log with the request's
// trace_id attached.
package logger
