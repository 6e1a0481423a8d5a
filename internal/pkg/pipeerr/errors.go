// Package pipeerr defines the error taxonomy shared by the pipeline store,
// resolver, and services. Sentinels are matched with errors.Is; the typed
// errors carry the failing path or process output for operation-boundary logs.
package pipeerr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a name that does not resolve to an existing row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidScope reports a scope tag outside the closed set, or a
	// union row with zero or multiple parent keys populated.
	ErrInvalidScope = errors.New("invalid scope")
)

// NotFound wraps ErrNotFound with the entity kind and name that failed to
// resolve.
func NotFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
}

// InvalidScope wraps ErrInvalidScope with the offending tag.
func InvalidScope(tag string) error {
	return fmt.Errorf("scope tag %q: %w", tag, ErrInvalidScope)
}

// DocumentError reports a scene document that could not be opened, parsed,
// or saved. Fatal to the operation; no partial document state is assumed.
type DocumentError struct {
	Path string
	Op   string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// FilesystemError reports a failed directory create or recursive delete.
// Row deletion is attempted only after the filesystem succeeded, so the
// relational state stays recoverable.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// ProcessError reports a headless export subprocess that exited non-zero or
// could not be launched.
type ProcessError struct {
	Cmd    string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("process %s: %v: %s", e.Cmd, e.Err, e.Stderr)
	}
	return fmt.Sprintf("process %s: %v", e.Cmd, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
