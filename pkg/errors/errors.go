// Package errors defines the coded errors every netgraph layer returns.
//
// A rejected graph operation fails with exactly one of these codes and
// leaves the store as it was:
//
//   - VALIDATION: empty name, unknown colour or shape
//   - DUPLICATE_NAME: another node already uses the name
//   - DUPLICATE_LINK: the two nodes are already linked, in either direction
//   - NODE_NOT_FOUND: no node has the given name or id
//   - LINK_NOT_FOUND: the two nodes are not linked
//
// CORRUPT_DATA reports a serialized graph that could not be decoded or
// breaks an invariant. The remaining codes cover command line input, files
// and internal failures.
//
// Codes survive wrapping with fmt.Errorf and %w:
//
//	err := errors.New(errors.ErrCodeNodeNotFound, "node does not exist: %s", name)
//	if errors.Is(err, errors.ErrCodeNodeNotFound) {
//	    // ...
//	}
//	err = errors.Wrap(errors.ErrCodeCorruptData, decodeErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an [Error].
type Code string

const (
	ErrCodeValidation    Code = "VALIDATION"
	ErrCodeDuplicateName Code = "DUPLICATE_NAME"
	ErrCodeDuplicateLink Code = "DUPLICATE_LINK"
	ErrCodeNodeNotFound  Code = "NODE_NOT_FOUND"
	ErrCodeLinkNotFound  Code = "LINK_NOT_FOUND"
	ErrCodeCorruptData   Code = "CORRUPT_DATA"

	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
)

// modelCodes are the codes a graph operation rejects its input with.
var modelCodes = map[Code]bool{
	ErrCodeValidation:    true,
	ErrCodeDuplicateName: true,
	ErrCodeDuplicateLink: true,
	ErrCodeNodeNotFound:  true,
	ErrCodeLinkNotFound:  true,
}

// Error carries a Code, a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders as "CODE: message" with ": cause" appended when set.
func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// or cause. Other errors are returned as err.Error().
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsModelError reports whether err is a rejected graph operation rather
// than an I/O or internal failure.
func IsModelError(err error) bool {
	return modelCodes[GetCode(err)]
}
