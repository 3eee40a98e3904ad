// Package errs defines the error types used across request handlers
// and utilities to map them to HTTP responses.
//
// Its purpose is to keep a single, closed set of error kinds so that
// every handler returns the nearest-fitting kind and a single place
// (the HTTP error handler, see HTTPErrorHandler) decides the status
// code and the JSON body sent to the client.
//
// Responsibilities:
//   - Classify failures as validation (400), not-found (404) or
//     infrastructure/unexpected (500).
//   - Serialize errors consistently, with a JSON body explaining the reason.
//   - Never leak driver or internal error text on 500-class responses.
package errs

import (
	"fmt"
	"net/http"
)

// Kind identifies one of the error categories handled by the library.
// The set is closed: every Kind maps to exactly one HTTP status code
// and one JSON body shape.
type Kind int

const (
	// KindStaticValidation is used to trigger any validation where the
	// error message doesn't need to be generated. Processed as
	// HTTP 400 Bad Request.
	KindStaticValidation Kind = iota

	// KindValidation is used to trigger any validation where the message
	// is built with the error details, optionally with a machine-readable
	// code. Processed as HTTP 400 Bad Request.
	KindValidation

	// KindDB encapsulates database driver errors, like the DB not being
	// accessible, timeouts, and so on. Processed as HTTP 500.
	KindDB

	// KindNotFound is used when a requested resource cannot be found,
	// or was deleted. Processed as HTTP 404 Not Found.
	KindNotFound

	// KindUnexpected wraps any other error. Processed as HTTP 500.
	KindUnexpected
)

// Error is the error type returned by handlers and the helpers of this
// library. Build values with the constructors: StaticValidation,
// Validation, DB, NotFound and Unexpected.
//
// An Error is constructed at the point of failure, consumed once by the
// response-conversion step, and never mutated.
type Error struct {
	Kind    Kind
	Code    string // optional machine-readable code, e.g. "insufficient_funds"
	Message string
	Err     error // wrapped cause, set for KindDB and KindUnexpected

	// Set for KindNotFound only.
	Resource  string
	Attribute string
	Value     string
}

// StaticValidation creates a 400 Bad Request error with a fixed message.
//
//	return errs.StaticValidation("User already exists.")
func StaticValidation(msg string) *Error {
	return &Error{Kind: KindStaticValidation, Message: msg}
}

// Validation creates a 400 Bad Request error with a message built by the
// caller and an optional machine-readable code (pass "" to omit it).
//
//	return errs.Validation("insufficient_funds",
//	    fmt.Sprintf("Customer with account %s doesn't have enough funds.", account.ID))
func Validation(code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

// DB wraps a database driver error. The client receives a generic
// 500 response; the underlying error is kept for logging only.
func DB(err error) *Error {
	return &Error{Kind: KindDB, Err: err}
}

// NotFound creates a 404 Not Found error for a resource looked up by the
// given attribute, e.g. NotFound("order", "id", "123") renders the message
// `order with id equals to "123" not found or was removed`.
func NotFound(resource, attribute, value string) *Error {
	return &Error{
		Kind:      KindNotFound,
		Code:      "not_found",
		Resource:  resource,
		Attribute: attribute,
		Value:     value,
	}
}

// Unexpected wraps any other error that needs to be surfaced as an
// HTTP 500 response without leaking its detail to the client.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Err: err}
}

// Error makes *Error satisfy the built-in error interface.
// For DB and Unexpected kinds it is transparent over the wrapped cause.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s with %s equals to %q not found or was removed",
			e.Resource, e.Attribute, e.Value)
	case KindDB, KindUnexpected:
		if e.Err != nil {
			return e.Err.Error()
		}
		return http.StatusText(http.StatusInternalServerError)
	default:
		return e.Message
	}
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode reports the HTTP status code the error maps to. The mapping
// is total: kinds outside the known set fall back to 500.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindStaticValidation, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Payload builds the JSON-serializable body for the error. DB and
// Unexpected kinds always produce the canonical reason phrase for the
// status code, never the wrapped error text.
func (e *Error) Payload() any {
	switch e.Kind {
	case KindStaticValidation:
		return &InternalErrorPayload{Error: e.Message}
	case KindValidation:
		return &ValidationErrorPayload{Code: e.Code, Error: e.Message}
	case KindNotFound:
		return &ValidationErrorPayload{Code: e.Code, Error: e.Error()}
	default:
		return &InternalErrorPayload{Error: http.StatusText(e.StatusCode())}
	}
}
