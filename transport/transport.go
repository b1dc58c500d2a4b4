package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
)

// Transport sends a single HTTP request
type Transport interface {
	Send(ctx context.Context, method, uri string, opts Options) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, method, uri string, opts Options) (*Response, error)

// Send calls f
func (f TransportFunc) Send(ctx context.Context, method, uri string, opts Options) (*Response, error) {
	return f(ctx, method, uri, opts)
}

// BodyMode selects how the request body is encoded
type BodyMode int

const (
	BodyNone BodyMode = iota
	BodyJSON
	BodyMultipart
)

// String returns the string representation of the body mode
func (m BodyMode) String() string {
	switch m {
	case BodyNone:
		return "none"
	case BodyJSON:
		return "json"
	case BodyMultipart:
		return "multipart"
	default:
		return "unknown"
	}
}

// Options describes the request body
type Options struct {
	Mode      BodyMode
	JSON      any
	Multipart []Part
}

// Part is one multipart form part. Filename is empty for plain fields.
type Part struct {
	Name     string
	Contents []byte
	Filename string
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ConnectError marks a failure that occurred while establishing the connection
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying network error
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IsConnectError reports whether err is a connection-level failure
func IsConnectError(err error) bool {
	var ce *ConnectError
	return errors.As(err, &ce)
}

// classify wraps network errors raised before a connection existed
func classify(err error) error {
	if err == nil || IsConnectError(err) {
		return err
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectError{Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &ConnectError{Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &ConnectError{Err: err}
	}

	return err
}
