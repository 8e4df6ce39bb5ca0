package spider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies resolution failures so callers can tell a dead
// backend from a healthy one that simply has no matching version.
type ErrorKind int

const (
	// KindSourceUnavailable indicates the backend could not be queried:
	// transport failure, timeout, non-2xx HTTP status, unreadable file,
	// or a failed external command.
	KindSourceUnavailable ErrorKind = iota
	// KindVersionNotFound indicates the backend answered but no
	// candidate survived filtering.
	KindVersionNotFound
	// KindMalformedSource indicates structured data from the backend
	// lacked an expected field or path.
	KindMalformedSource
)

// String returns the kind as a short diagnostic label.
func (k ErrorKind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source unavailable"
	case KindVersionNotFound:
		return "version not found"
	case KindMalformedSource:
		return "malformed source"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Error provides structured information about a resolution failure.
type Error struct {
	Kind    ErrorKind
	Source  string // SourceDescription of the failing spider
	Message string // human-readable detail
	Err     error  // underlying cause (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Err
}

func unavailable(source, message string, err error) *Error {
	return &Error{Kind: KindSourceUnavailable, Source: source, Message: message, Err: err}
}

func notFound(source, message string) *Error {
	return &Error{Kind: KindVersionNotFound, Source: source, Message: message}
}

func malformed(source, message string) *Error {
	return &Error{Kind: KindMalformedSource, Source: source, Message: message}
}

func isKind(err error, kind ErrorKind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

// IsSourceUnavailable reports whether err (or anything it wraps) is a
// KindSourceUnavailable resolution error.
func IsSourceUnavailable(err error) bool {
	return isKind(err, KindSourceUnavailable)
}

// IsVersionNotFound reports whether err (or anything it wraps) is a
// KindVersionNotFound resolution error.
func IsVersionNotFound(err error) bool {
	return isKind(err, KindVersionNotFound)
}

// IsMalformedSource reports whether err (or anything it wraps) is a
// KindMalformedSource resolution error.
func IsMalformedSource(err error) bool {
	return isKind(err, KindMalformedSource)
}
