// Package errorsx provides the small set of error-handling helpers
// mousegen uses everywhere, adapted from cogentcore.org/core/base/errors:
// the same Log/Log1/Must1 shapes, narrowed to what this module needs.
package errorsx

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log logs err through slog if it is non-nil and returns it unchanged.
// Intended usage: return errorsx.Log(doThing())
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs err if non-nil and returns v regardless.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must1 panics if err is non-nil, otherwise returns v. Reserved for
// InvalidState conditions: programmer misuse of the pipeline API, not
// for data the caller does not control.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Must panics if err is non-nil. The no-value sibling of Must1, for
// call sites with nothing to return on success.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// CallerInfo describes the caller of the function that called
// CallerInfo, for inclusion in log lines.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	name := "?"
	if fn != nil {
		name = fn.Name()
	}
	return name + " " + file + ":" + strconv.Itoa(line)
}
