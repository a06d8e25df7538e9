// Package errors defines the coded errors returned by icon lookup, icon set
// loading, the remote loader and rendering.
//
// A [Code] tells the CLI and the HTTP server what went wrong without string
// matching: the CLI prints [UserMessage], the server maps [GetCode] to a
// status (INVALID_* is 400, *NOT_FOUND is 404, remote API failures are 502).
//
//	_, err := reg.Lookup(name)
//	if errors.Is(err, errors.ErrCodeIconNotFound) {
//	    // try the remote API
//	}
//
// The geometry core in package svg never returns errors.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	// Bad icon names, icon set files, colors, formats and config.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidIconName Code = "INVALID_ICON_NAME"
	ErrCodeInvalidIconSet  Code = "INVALID_ICON_SET"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Unknown icon sets or providers, unknown icons, missing set files.
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeIconNotFound Code = "ICON_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Remote icon API failures.
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded failure, e.g. "ICON_NOT_FOUND: mdi:nope: ...".
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap is [New] with an underlying cause, kept for errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first coded error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first coded error in err's chain, or ""
// for uncoded errors. A [RateLimitedError] counts as RATE_LIMITED.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Code()
	}
	return ""
}

// UserMessage is the message shown to people: the coded error's message
// without code or cause, else err's text.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is any of the not-found codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeIconNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}

// RateLimitedError is a 429 from the remote icon API.
type RateLimitedError struct {
	RetryAfter int // seconds, 0 when the API did not say
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code is always RATE_LIMITED.
func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }
