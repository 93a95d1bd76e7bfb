package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request was malformed (HTTP 400).
	InvalidInput
	// Unreachable indicates the target could not be reached: connection
	// refused, DNS failure or TLS failure (HTTP 502).
	Unreachable
	// Timeout indicates the target took too long to respond (HTTP 504).
	Timeout
	// ParsingFailed indicates the response could not be parsed (HTTP 500).
	ParsingFailed
	// CapabilityUnavailable marks an optional capability that is not
	// configured. It signals degraded mode and is never reported as a failure.
	CapabilityUnavailable
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	case ParsingFailed:
		return "parsing_failed"
	case CapabilityUnavailable:
		return "capability_unavailable"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Classify wraps a raw transport error into an AppError. Deadline and
// network timeouts become Timeout, everything else Unreachable. Errors that
// already are AppErrors are returned unchanged.
func Classify(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	kind := Unreachable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = Timeout
	}
	return &AppError{Kind: kind, Message: message, Cause: err}
}

// KindOf reports the Kind of err, or Unknown when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
