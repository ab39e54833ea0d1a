package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the category of a domain error so that callers can
// react to each kind without matching on message text.
type ErrorCode string

const (
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeEntityNotFound ErrorCode = "ENTITY_NOT_FOUND"
	CodeUnknownState   ErrorCode = "UNKNOWN_STATE"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeInternal       ErrorCode = "INTERNAL"
)

// Error is the domain error type shared by all aggregates and services.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError signals malformed input or a violated business precondition.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewConflictError signals a semantically valid but disallowed operation.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewNotFoundError signals that a referenced entity does not exist or is not
// visible to the requester.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewEntityNotFoundError is the authorization-shaped not-found used when a
// non-owner attempts a confirmation. Kept distinct from CodeNotFound so the
// protocol boundary can tell the two signals apart.
func NewEntityNotFoundError(message string) *Error {
	return &Error{Code: CodeEntityNotFound, Message: message}
}

// NewUnknownStateError signals a state filter token that matched no
// recognized value.
func NewUnknownStateError(state string) *Error {
	return &Error{Code: CodeUnknownState, Message: "Unknown state: " + state}
}

// NewForbiddenError signals an operation the requester may not perform.
func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NewInvalidStateError signals a disallowed status transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// CodeOf returns the code of err if it is a domain error, CodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
