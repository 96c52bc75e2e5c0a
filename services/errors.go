package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a service failure so controllers can map it to an
// HTTP status without string matching.
type ErrorKind string

const (
	KindValidation             ErrorKind = "VALIDATION_ERROR"
	KindForbidden              ErrorKind = "FORBIDDEN"
	KindNotFound               ErrorKind = "NOT_FOUND"
	KindConflict               ErrorKind = "CONFLICT"
	KindInvalidStateTransition ErrorKind = "INVALID_STATE_TRANSITION"
	KindDependencyFailure      ErrorKind = "DEPENDENCY_FAILURE"
)

// ServiceError carries a kind, a caller-safe message and optional field
// details. Internal causes stay in Err and are logged, never serialized.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a named detail to the error and returns it.
func (e *ServiceError) WithDetail(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// StatusCode maps the kind to the HTTP status controllers should return.
func (e *ServiceError) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindInvalidStateTransition:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind ErrorKind, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

func ValidationError(message string) *ServiceError {
	return newError(KindValidation, message)
}

func ForbiddenError(message string) *ServiceError {
	return newError(KindForbidden, message)
}

func NotFoundError(message string) *ServiceError {
	return newError(KindNotFound, message)
}

func ConflictError(message string) *ServiceError {
	return newError(KindConflict, message)
}

func InvalidStateTransitionError(message string) *ServiceError {
	return newError(KindInvalidStateTransition, message)
}

func DependencyFailure(message string, err error) *ServiceError {
	return wrapError(KindDependencyFailure, message, err)
}

// AsServiceError extracts a *ServiceError from err if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
