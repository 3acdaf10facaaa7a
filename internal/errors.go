package internal

import "fmt"

// StorageError reports a failure locating, copying or querying the kiro-cli
// data.sqlite3 file. Callers treat it as "no history".
type StorageError struct {
	Path string
	Op   string // "stat", "open", "query", "copy"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError reports a conversations_v2 value or settings file that cannot
// be decoded. The row or file is skipped with a warning.
type ParseError struct {
	Source string // "conversations_v2", "settings"
	Key    string // conversation key or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StreamError identifies the line of a live agent stream whose frame was
// skipped
type StreamError struct {
	Line int
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error [line %d]: %v", e.Line, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// ExportError wraps a failure writing one conversation in a given format
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
