package logger

import "testing"

var _ Logger = Test{}

// Test is a Logger that prints through testing.T, so that log entries
// are only shown for failing tests or when running with -v.
type Test struct{ t testing.TB }

// NewTest returns a new Logger using the provided testing.TB instance.
func NewTest(t testing.TB) Test {
	return Test{t: t}
}

// Debug uses t.Logf to print a debug message.
func (t Test) Debug(msg string, fields ...Field) {
	t.t.Helper()
	t.t.Logf("[debug] %s %s", msg, formatFields(fields))
}

// Info uses t.Logf to print an info message.
func (t Test) Info(msg string, fields ...Field) {
	t.t.Helper()
	t.t.Logf("[info] %s %s", msg, formatFields(fields))
}

// Error uses t.Logf to print an error message.
func (t Test) Error(msg string, fields ...Field) {
	t.t.Helper()
	t.t.Logf("[error] %s %s", msg, formatFields(fields))
}
