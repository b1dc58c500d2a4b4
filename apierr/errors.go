package apierr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies one of the failure variants
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindProtocol
	KindTransport
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindProtocol:
		return "protocol"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Reasons attached to ProtocolError
const (
	ReasonUnexpectedStatus = "unexpected status code"
	ReasonInvalidResult    = "invalid result"
	ReasonErrorPayload     = "error from request"
)

// NotFoundError is returned when the resource does not exist (HTTP 404)
type NotFoundError struct {
	Method string
	URI    string
	Body   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Resource %s %s does not exist, body = %s", e.Method, e.URI, e.Body)
}

// ProtocolError is returned when a response was received but cannot be
// accepted as an API result
type ProtocolError struct {
	Reason     string
	Method     string
	URI        string
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	switch e.Reason {
	case ReasonUnexpectedStatus:
		return fmt.Sprintf("Unexpected status code \"%d\" from request %s %s, body = %s", e.StatusCode, e.Method, e.URI, e.Body)
	case ReasonInvalidResult:
		return fmt.Sprintf("Invalid result from request %s %s, response body: %s", e.Method, e.URI, e.Body)
	case ReasonErrorPayload:
		return fmt.Sprintf("Error from request %s %s, response body: %s", e.Method, e.URI, e.Body)
	default:
		return fmt.Sprintf("%s from request %s %s, response body: %s", e.Reason, e.Method, e.URI, e.Body)
	}
}

// TransportError is returned when no response could be obtained
type TransportError struct {
	Method   string
	URI      string
	Attempts int
	cause    error
}

// NewTransportError wraps cause, recording a stack trace at the call site
func NewTransportError(method, uri string, attempts int, cause error) *TransportError {
	return &TransportError{
		Method:   method,
		URI:      uri,
		Attempts: attempts,
		cause:    pkgerrors.WithStack(cause),
	}
}

func (e *TransportError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("request %s %s failed", e.Method, e.URI)
	}
	return e.cause.Error()
}

// Unwrap returns the underlying transport failure
func (e *TransportError) Unwrap() error {
	return e.cause
}

// Format supports %+v to print the cause with its stack trace
func (e *TransportError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.cause != nil {
		fmt.Fprintf(s, "request %s %s failed after %d attempt(s): %+v", e.Method, e.URI, e.Attempts, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// KindOf reports which variant err belongs to, or KindNone
func KindOf(err error) Kind {
	var (
		nf *NotFoundError
		pe *ProtocolError
		te *TransportError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &pe):
		return KindProtocol
	case errors.As(err, &te):
		return KindTransport
	default:
		return KindNone
	}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsAPIError reports whether err belongs to the taxonomy
func IsAPIError(err error) bool {
	return KindOf(err) != KindNone
}
