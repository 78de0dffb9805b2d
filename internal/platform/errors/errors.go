// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the dataset jobs
// Values are stable for log compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeUnreadable is for required inputs that cannot be read or are empty
	ErrorCodeUnreadable

	// ErrorCodeInvalidArgument is for bad job parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for validation failures (input data)
	ErrorCodeValidation

	// ErrorCodeMissingVideo is for log entries referencing a video absent from the counts table
	ErrorCodeMissingVideo

	// ErrorCodeMalformedTimestamp is for unparseable event-log lines
	ErrorCodeMalformedTimestamp

	// ErrorCodeMissingValue is for dataset rows with blank or unusable cells
	ErrorCodeMissingValue

	// ErrorCodeNegativeFrame is for dataset rows with a negative frame index
	ErrorCodeNegativeFrame

	// ErrorCodeOutOfBounds is for dataset rows whose end frame exceeds the video length
	ErrorCodeOutOfBounds

	// ErrorCodeInvalidOrdering is for dataset rows with begin frame greater than end frame
	ErrorCodeInvalidOrdering

	// ErrorCodeIO is for general filesystem errors
	ErrorCodeIO
)

// String returns the stable snake_case reason tag used in log output
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeUnreadable:
		return "unreadable"
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeValidation:
		return "validation"
	case ErrorCodeMissingVideo:
		return "missing_video"
	case ErrorCodeMalformedTimestamp:
		return "malformed_timestamp"
	case ErrorCodeMissingValue:
		return "missing_value"
	case ErrorCodeNegativeFrame:
		return "negative_frame"
	case ErrorCodeOutOfBounds:
		return "out_of_bounds"
	case ErrorCodeInvalidOrdering:
		return "invalid_ordering"
	case ErrorCodeIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation); orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// NewField returns a new *Error with code, message, and offending field
func NewField(code ErrorCode, field, msg string) error {
	return &Error{code: code, msg: msg, field: field}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// Unreadablef returns an unreadable input error
func Unreadablef(format string, a ...any) error { return Newf(ErrorCodeUnreadable, format, a...) }

// MalformedTimestampf returns a malformed timestamp error
func MalformedTimestampf(format string, a ...any) error {
	return Newf(ErrorCodeMalformedTimestamp, format, a...)
}

// IOf returns a general filesystem error
func IOf(format string, a ...any) error { return Newf(ErrorCodeIO, format, a...) }
