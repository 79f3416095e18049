package pfm

import (
	"fmt"
	"strings"
)

// SchemaError reports required business columns absent from the blob at
// load time. It is fatal: the whole load aborts.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// BackendError reports a blob fetch or store failure. It is propagated
// verbatim, the store never retries.
type BackendError struct {
	Op  string // "get" or "put"
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ValidationError reports a caller-supplied field failing a business rule.
// For batch operations Index carries the 1-based position of the offending
// item; it is 0 for single-record operations.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("item %d: %s", e.Index, e.Reason)
	}
	return e.Reason
}

// NotFoundError reports an operation referencing an id that does not exist
// in the current record set.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no transaction with id %q", e.ID)
}

// invalidf builds a *ValidationError for a single-record operation.
func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
