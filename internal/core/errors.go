package core

import "fmt"

// ValidationError represents a user-input validation failure. These are
// recoverable: processing of the offending item stops, siblings may
// still succeed.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StructureError represents a malformed input document (missing
// top-level key, non-list rules, unreadable JSON). Fatal for the whole
// operation; no partial output is written.
type StructureError struct {
	Path    string
	Message string
	Err     error
}

func (e *StructureError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// MergeError represents incompatible column sets between CSV files of
// the same kind. The whole merge aborts rather than partially merging.
type MergeError struct {
	Reference string
	Current   string
	Message   string
	Err       error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s with %s: %s", e.Reference, e.Current, e.Message)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
