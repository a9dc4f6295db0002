package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// Gateway call outcomes. The portal owns no data of its own, so most
	// failures trace back to one of these.
	ErrGatewayNetwork   = New("NETWORK_ERROR", http.StatusBadGateway, "content gateway unreachable")
	ErrGatewayRejected  = New("GATEWAY_REJECTED", http.StatusBadGateway, "content gateway rejected the operation")
	ErrGatewayMalformed = New("MALFORMED_RESPONSE", http.StatusBadGateway, "content gateway returned a malformed payload")

	ErrIllegalTransition = New("ILLEGAL_TRANSITION", http.StatusConflict, "transition not allowed from current status")
	ErrSessionExpired    = New("SESSION_EXPIRED", http.StatusUnauthorized, "session expired")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Kind buckets an error into the coarse failure taxonomy surfaced to callers
// of the transition executor.
type Kind string

const (
	KindNetwork      Kind = "NETWORK"
	KindValidation   Kind = "VALIDATION"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindUnknown      Kind = "UNKNOWN"
)

// KindOf maps an error onto its Kind.
func KindOf(err error) Kind {
	e := FromError(err)
	if e == nil {
		return KindUnknown
	}
	switch e.Code {
	case ErrGatewayNetwork.Code:
		return KindNetwork
	case ErrValidation.Code, ErrGatewayMalformed.Code, ErrIllegalTransition.Code:
		return KindValidation
	case ErrUnauthorized.Code, ErrInvalidCredentials.Code, ErrSessionExpired.Code:
		return KindUnauthorized
	default:
		return KindUnknown
	}
}
