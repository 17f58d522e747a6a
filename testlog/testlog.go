// Package testlog bridges Go test logging into the *zap.Logger the fixtures
// accept, so fixture activity shows up in `go test -v` output attributed to
// the right test.
package testlog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// New returns a logger that writes through tb.Log. Output is only shown for
// failing tests or with -v, like any other test log line.
func New(tb testing.TB) *zap.Logger {
	return zaptest.NewLogger(tb)
}

// NewAt returns a logger that writes through tb.Log, discarding entries below
// the given level.
func NewAt(tb testing.TB, level zapcore.Level) *zap.Logger {
	return zaptest.NewLogger(tb, zaptest.Level(level))
}

// Discard returns a logger that drops everything. It is the default logger
// for every fixture in this module.
func Discard() *zap.Logger {
	return zap.NewNop()
}
