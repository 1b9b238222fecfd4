package models

import (
	"errors"
	"fmt"
)

// Validation error codes.
const (
	CodeNonPositiveAmount    = "NON_POSITIVE_AMOUNT"
	CodeNoParticipants       = "NO_PARTICIPANTS"
	CodeAmountMismatch       = "AMOUNT_MISMATCH"
	CodeDuplicateParticipant = "DUPLICATE_PARTICIPANT"
	CodeInvalidSplitType     = "INVALID_SPLIT_TYPE"
	CodeInvalidInput         = "INVALID_INPUT"
)

// Conflict error codes.
const (
	CodeAlreadyVoid  = "ALREADY_VOID"
	CodeMemberExists = "MEMBER_EXISTS"
)

// ValidationError reports bad input shape or amounts. The caller can always
// recover by correcting the input.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that the target already transitioned state.
// The caller should re-read and decide.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConflictError builds a ConflictError with a formatted message.
func NewConflictError(code, format string, args ...any) *ConflictError {
	return &ConflictError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced id that does not exist.
type NotFoundError struct {
	// Kind is the kind of record, e.g. "expense", "circle", "member".
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// InvariantViolation reports broken internal consistency. It is always a bug
// or data corruption and must reach an operator, never an end user.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Message
}

// NewInvariantViolation builds an InvariantViolation with a formatted message.
func NewInvariantViolation(format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Message: fmt.Sprintf(format, args...)}
}

// ErrPermissionDenied reports that the acting member may not perform the
// operation. Match it with errors.Is.
var ErrPermissionDenied = errors.New("permission denied")

// Denied wraps ErrPermissionDenied with a formatted reason.
func Denied(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is or wraps a ValidationError with one of
// the given codes. With no codes any ValidationError matches.
func IsValidation(err error, codes ...string) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return matchCode(ve.Code, codes)
}

// IsConflict reports whether err is or wraps a ConflictError with one of the
// given codes. With no codes any ConflictError matches.
func IsConflict(err error, codes ...string) bool {
	var ce *ConflictError
	if !errors.As(err, &ce) {
		return false
	}
	return matchCode(ce.Code, codes)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvariantViolation reports whether err is or wraps an InvariantViolation.
func IsInvariantViolation(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}

// ErrorCode returns the taxonomy code carried by err, or "" for
// infrastructure errors.
func ErrorCode(err error) string {
	var (
		ve *ValidationError
		ce *ConflictError
		nf *NotFoundError
		iv *InvariantViolation
	)
	switch {
	case errors.As(err, &ve):
		return ve.Code
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &nf):
		return "NOT_FOUND"
	case errors.As(err, &iv):
		return "INVARIANT_VIOLATION"
	case errors.Is(err, ErrPermissionDenied):
		return "PERMISSION_DENIED"
	}
	return ""
}

func matchCode(code string, codes []string) bool {
	if len(codes) == 0 {
		return true
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
