package core

// errors.go defines the failure taxonomy of a search run.
//
// Every failure belongs to one of four tiers:
//
//	Fatal - the run cannot start (SRC001, REF001)
//	File  - one source file is skipped, others continue (FILE001-FILE003)
//	Row   - one record degrades to empty fields (ROW001)
//	Name  - one family name yields no report (NAME001, TASK001)
//
// Describe maps any error produced by this package to a coded message so
// log entries can be grepped by code.

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceDirMissing is returned when the input directory does not exist.
	ErrSourceDirMissing = errors.New("source directory not found")

	// ErrReference is returned when a reference table cannot be loaded.
	ErrReference = errors.New("reference table unusable")

	// ErrFileLoad is returned when a source file cannot be read or parsed.
	ErrFileLoad = errors.New("source file unreadable")

	// ErrNoDelimiter is returned when no field delimiter can be sniffed.
	ErrNoDelimiter = errors.New("could not determine delimiter")

	// ErrMissingColumn is returned when a source file lacks the name column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrRowTransform is returned when a record field cannot be derived.
	ErrRowTransform = errors.New("record transform failed")

	// ErrMissingField marks a required field absent from a record.
	ErrMissingField = errors.New("field absent")

	// ErrNoMatches reports a family name with no matching records.
	ErrNoMatches = errors.New("no matching records")

	// ErrTaskPanic wraps a panic recovered from a family-name task.
	ErrTaskPanic = errors.New("task panicked")
)

// Severity is the tier a failure belongs to.
type Severity string

const (
	SeverityFatal Severity = "fatal"
	SeverityFile  Severity = "file"
	SeverityRow   Severity = "row"
	SeverityName  Severity = "name"
)

// ErrorInfo is the coded description of a failure.
type ErrorInfo struct {
	Code     string
	Severity Severity
	Message  string
}

type errorClass struct {
	target error
	info   ErrorInfo
}

// errorClasses is checked in order; the first errors.Is match wins, so
// specific sentinels come before the ones that wrap them.
var errorClasses = []errorClass{
	{ErrSourceDirMissing, ErrorInfo{"SRC001", SeverityFatal, "Input directory does not exist"}},
	{ErrReference, ErrorInfo{"REF001", SeverityFatal, "Reference table could not be loaded"}},
	{ErrNoDelimiter, ErrorInfo{"FILE002", SeverityFile, "Could not detect the field delimiter"}},
	{ErrMissingColumn, ErrorInfo{"FILE003", SeverityFile, "Source file lacks a required column"}},
	{ErrFileLoad, ErrorInfo{"FILE001", SeverityFile, "Source file could not be read"}},
	{ErrRowTransform, ErrorInfo{"ROW001", SeverityRow, "Record could not be transformed"}},
	{ErrNoMatches, ErrorInfo{"NAME001", SeverityName, "No records matched the family name"}},
	{ErrTaskPanic, ErrorInfo{"TASK001", SeverityName, "Family-name task crashed"}},
}

var unknownError = ErrorInfo{"ERR000", SeverityName, "Unexpected error"}

// Describe returns the coded description of err.
// Errors outside the taxonomy are reported as ERR000.
func Describe(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.info
		}
	}
	return unknownError
}

// IsFatal reports whether err must halt the run.
func IsFatal(err error) bool {
	return err != nil && Describe(err).Severity == SeverityFatal
}

// FieldError records which field of a record could not be derived.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
