// ABOUTME: Structured errors with stable machine-readable codes
// ABOUTME: Every externally-visible failure maps to exactly one Code
package errdefs

import (
	"errors"
	"fmt"
)

// Code identifies a specific failure condition
type Code string

const (
	// Setup / lifecycle
	CodeNotReady Code = "NOT_READY"

	// Upstream model backends
	CodeUpstreamUnavailable   Code = "UPSTREAM_UNAVAILABLE"
	CodeUnrecognizedResponse  Code = "UNRECOGNIZED_RESPONSE"
	CodeEmbeddingFailed       Code = "EMBEDDING_FAILED"
	CodeTranscriptionFailed   Code = "TRANSCRIPTION_FAILED"
	CodeTranscriptUnavailable Code = "TRANSCRIPT_UNAVAILABLE"
	CodeTranscriptFetchFailed Code = "TRANSCRIPT_FETCH_FAILED"

	// Caller input
	CodeMalformedInput    Code = "MALFORMED_INPUT"
	CodeAudioDecodeFailed Code = "AUDIO_DECODE_FAILED"

	// Index state
	CodeIndexEmpty Code = "INDEX_EMPTY"

	// Fallback
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error carries a stable code alongside the human-readable message
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

// CodeOf extracts the code from err, or CodeInternal for plain errors
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message for err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
