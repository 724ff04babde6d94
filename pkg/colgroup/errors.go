package colgroup

import (
	"errors"
	"fmt"
)

// ErrDirNotFound indicates the requested directory does not exist.
// It is the only failure raised to callers; every other error is recorded
// in a report and processing continues.
var ErrDirNotFound = errors.New("directory not found")

// LoadError represents a read or parse failure for one source file.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error for %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError represents a caller-supplied table that is not usable.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid table %q: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GroupingError represents an aggregation failure for one source during
// grouping. The source is demoted to unmatched, never lost.
type GroupingError struct {
	Source string
	Err    error
}

func (e *GroupingError) Error() string {
	return fmt.Sprintf("grouping error for %q: %v", e.Source, e.Err)
}

func (e *GroupingError) Unwrap() error {
	return e.Err
}

// ExportError represents a failure to write one output artifact.
type ExportError struct {
	Artifact string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error for %q: %v", e.Artifact, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
