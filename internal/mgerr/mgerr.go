// Package mgerr defines the behavioral error taxonomy of the mousegen
// rendering pipeline (spec §7): each kind is a distinct type so callers
// can branch with errors.As instead of string matching, while every
// value still wraps the underlying cause with fmt.Errorf %w so the
// standard errors.Is/errors.Unwrap chain keeps working.
package mgerr

import "fmt"

// MalformedSource reports a bad viewBox, bad anchor "d", or unreadable
// SVG. Reported per file; the pipeline aborts the current cursor and
// continues with the next one.
type MalformedSource struct {
	File string
	Err  error
}

func (e *MalformedSource) Error() string {
	return fmt.Sprintf("malformed source %s: %v", e.File, e.Err)
}

func (e *MalformedSource) Unwrap() error { return e.Err }

// MalformedBitmap reports a dimension out of range or a zero-frame
// animation. Aborts the current cursor.
type MalformedBitmap struct {
	Cursor string
	Err    error
}

func (e *MalformedBitmap) Error() string {
	return fmt.Sprintf("malformed bitmap for cursor %s: %v", e.Cursor, e.Err)
}

func (e *MalformedBitmap) Unwrap() error { return e.Err }

// MalformedContainer reports a decode-time failure: overlapping
// chunks, bad magic, non-cursor type, unsupported header sizes. Fatal
// for that file; the offset identifies where the reader gave up.
type MalformedContainer struct {
	Offset int64
	Err    error
}

func (e *MalformedContainer) Error() string {
	return fmt.Sprintf("malformed container at offset %d: %v", e.Offset, e.Err)
}

func (e *MalformedContainer) Unwrap() error { return e.Err }

// MissingMapping reports a source cursor name absent from the
// target-name map in strict (non-all-cursors) mode. The pipeline warns
// and skips the file; it never aborts the run.
type MissingMapping struct {
	SourceName string
}

func (e *MissingMapping) Error() string {
	return fmt.Sprintf("no target name mapping for cursor %q", e.SourceName)
}

// InvalidState reports API misuse, such as changing pipeline state
// while a build is in progress. A programmer error: callers should
// treat it as fatal rather than attempt recovery.
type InvalidState struct {
	Msg string
}

func (e *InvalidState) Error() string { return "invalid state: " + e.Msg }

// ConfigError reports a JSON parse or validation failure in render.json,
// animations.json, or a *-names.json file. The run aborts before any
// emission.
type ConfigError struct {
	File string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %v", e.File, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
