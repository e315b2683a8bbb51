package snapshot

import (
	"errors"
	"strconv"
)

// Sentinel kinds for snapshot errors.
var (
	ErrUnreadable  = errors.New("could not read file")
	ErrWriteReport = errors.New("could not write report")
)

// Line rejection reasons. They surface only inside LineError.
var (
	ErrMissingName      = errors.New("missing name")
	ErrMissingSalary    = errors.New("missing salary")
	ErrInvalidSalary    = errors.New("salary is not a number")
	ErrBadMarker        = errors.New("third field is not the manager marker")
	ErrEmptyManagedName = errors.New("empty managed employee name")
	ErrUnknownEmployee  = errors.New("managed employee does not exist")
)

// LineError describes a bulk-load line that was rejected and skipped.
type LineError struct {
	Line int    // 1-based line number in the source
	Text string // raw line content
	Err  error
}

func (e *LineError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *LineError) Unwrap() error { return e.Err }
