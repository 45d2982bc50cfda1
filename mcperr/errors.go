// Package mcperr defines the error taxonomy shared by the transport,
// correlator, and client packages.
package mcperr

import "fmt"

// Kind classifies a failure along the lines the protocol cares about:
// whether it's safe to log and continue, whether it ends the transport,
// and what shape to hand back to a caller.
type Kind int

const (
	// KindIO covers OS-level failures spawning the child or reading/writing streams.
	KindIO Kind = iota
	// KindParse covers malformed JSON on an inbound line.
	KindParse
	// KindProtocol covers structurally valid but semantically wrong messages.
	KindProtocol
	// KindRPC wraps a well-formed JSON-RPC error object returned by the server.
	KindRPC
	// KindTimeout marks a request whose response did not arrive within the deadline.
	KindTimeout
	// KindChannelClosed marks an inoperable transport.
	KindChannelClosed
	// KindNotConnected marks an operation issued with no transport present.
	KindNotConnected
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindProtocol:
		return "protocol"
	case KindRPC:
		return "rpc"
	case KindTimeout:
		return "timeout"
	case KindChannelClosed:
		return "channel_closed"
	case KindNotConnected:
		return "not_connected"
	default:
		return "unknown"
	}
}

// Error is the single error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// Code and Data are populated only for KindRPC: the server's JSON-RPC
	// error object, surfaced to the caller verbatim.
	Code int
	Data any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	me, ok := err.(*Error)
	return ok && me.Kind == kind
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IO wraps an OS-level error with the command context that produced it.
func IO(cause error, format string, args ...any) *Error {
	e := newf(KindIO, format, args...)
	e.Cause = cause
	return e
}

// Parse wraps a JSON decoding failure.
func Parse(cause error, format string, args ...any) *Error {
	e := newf(KindParse, format, args...)
	e.Cause = cause
	return e
}

// Protocol reports a structurally valid but semantically wrong message.
func Protocol(format string, args ...any) *Error {
	return newf(KindProtocol, format, args...)
}

// RPC wraps a JSON-RPC error object returned by the server.
func RPC(code int, message string, data any) *Error {
	return &Error{Kind: KindRPC, Message: message, Code: code, Data: data}
}

// Timeout reports that a request's deadline elapsed with no response.
func Timeout(format string, args ...any) *Error {
	return newf(KindTimeout, format, args...)
}

// ChannelClosed reports that the transport is no longer operable.
func ChannelClosed(format string, args ...any) *Error {
	return newf(KindChannelClosed, format, args...)
}

// NotConnected reports an operation issued with no transport present.
func NotConnected(format string, args ...any) *Error {
	return newf(KindNotConnected, format, args...)
}
