// Package errs provides the unified error type used across all of sqlframe.
//
// Every layer (URL building, connection management, query execution, frame
// sinks) wraps its native errors into *errs.Error before returning them to
// callers. Callers use the Is* predicates to handle failures without
// importing driver-specific packages.
//
// Usage:
//
//	// In a dialect — wrap native errors:
//	return errs.Wrap(errs.KindQuery, "statement failed", pgErr)
//
//	// In application code — check the error family:
//	if errs.IsConnection(err) {
//	    log.Fatal("database unreachable")
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises an error without exposing driver-specific codes.
// All engines (Postgres, MySQL, SQLite, DuckDB, object stores) map their
// native errors to one of these kinds, giving callers a single consistent API.
type Kind int

const (
	KindUnknown       Kind = iota
	KindConfiguration      // bad or missing URL-building / config fields
	KindConnection         // engine unreachable, auth failure, malformed DSN
	KindQuery              // invalid filter/statement, DDL failure, execution error
	KindNotFound           // no rows matched
	KindTimeout            // context deadline or cancellation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	case KindNotFound:
		return "not_found"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all sqlframe operations.
// The dialect layer produces it; callers inspect it via the Is* predicates.
type Error struct {
	Kind    Kind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsConfiguration reports whether err was caused by a missing or invalid
// connection-descriptor field or config value.
func IsConfiguration(err error) bool {
	return kindOf(err) == KindConfiguration
}

// IsConnection reports whether err is a connectivity or auth failure.
func IsConnection(err error) bool {
	return kindOf(err) == KindConnection
}

// IsQuery reports whether err is a SQL execution or DDL failure.
func IsQuery(err error) bool {
	return kindOf(err) == KindQuery
}

// IsNotFound reports whether err represents a "no rows" result.
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == KindTimeout
}

// kindOf extracts the Kind from any error in the chain.
func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
