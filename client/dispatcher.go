package client

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GriffinCanCode/wpapi/apierr"
	"github.com/GriffinCanCode/wpapi/transport"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultMaxAttempts includes the first attempt
	DefaultMaxAttempts = 5

	// multipartFileField is the part name used for every uploaded file
	multipartFileField = "file"
)

// Backoff returns the wait before the attempt following attempt
type Backoff func(attempt int) time.Duration

// ExponentialBackoff waits min*2^(attempt-1), capped at max
func ExponentialBackoff(min, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return retryablehttp.DefaultBackoff(min, max, attempt-1, nil)
	}
}

// NoBackoff retries immediately
func NoBackoff() Backoff {
	return func(int) time.Duration { return 0 }
}

// RetryHook is called after a connection failure that will be retried
type RetryHook func(method, uri string, attempt int, err error)

// Option configures the dispatcher
type Option func(*Dispatcher)

// WithMaxAttempts sets the total number of attempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n >= 1 {
			d.maxAttempts = n
		}
	}
}

// WithBackoff sets the wait between connection retries
func WithBackoff(b Backoff) Option {
	return func(d *Dispatcher) {
		if b != nil {
			d.backoff = b
		}
	}
}

// WithRetryHook registers a hook run before each retry
func WithRetryHook(h RetryHook) Option {
	return func(d *Dispatcher) {
		d.hooks = append(d.hooks, h)
	}
}

// Dispatcher sends requests, retrying connection failures only
type Dispatcher struct {
	transport   transport.Transport
	maxAttempts int
	backoff     Backoff
	hooks       []RetryHook
}

// NewDispatcher creates a dispatcher with DefaultMaxAttempts and a short
// exponential backoff
func NewDispatcher(tr transport.Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport:   tr,
		maxAttempts: DefaultMaxAttempts,
		backoff:     ExponentialBackoff(50*time.Millisecond, time.Second),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MaxAttempts returns the configured attempt limit
func (d *Dispatcher) MaxAttempts() int {
	return d.maxAttempts
}

// Dispatch sends one logical request. Attempts are strictly sequential.
func (d *Dispatcher) Dispatch(ctx context.Context, method, uri string, data Data) (*transport.Response, error) {
	opts, err := BuildOptions(data)
	if err != nil {
		return nil, apierr.NewTransportError(method, uri, 0, err)
	}

	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		resp, err := d.transport.Send(ctx, method, uri, opts)
		if err == nil {
			if resp == nil {
				return nil, apierr.NewTransportError(method, uri, attempt, fmt.Errorf("transport returned no response"))
			}
			return resp, nil
		}

		if !transport.IsConnectError(err) {
			return nil, apierr.NewTransportError(method, uri, attempt, err)
		}

		lastErr = err
		if attempt == d.maxAttempts {
			break
		}

		for _, hook := range d.hooks {
			hook(method, uri, attempt, err)
		}

		if err := wait(ctx, d.backoff(attempt)); err != nil {
			return nil, apierr.NewTransportError(method, uri, attempt, err)
		}
	}

	return nil, apierr.NewTransportError(method, uri, d.maxAttempts, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BuildOptions derives the transport body from data. Any FileSource switches
// the whole body to multipart; parts follow sorted key order.
func BuildOptions(data Data) (transport.Options, error) {
	if len(data) == 0 {
		return transport.Options{}, nil
	}

	if !hasFile(data) {
		return transport.Options{Mode: transport.BodyJSON, JSON: map[string]any(data)}, nil
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]transport.Part, 0, len(keys))
	for _, key := range keys {
		switch v := data[key].(type) {
		case FileSource:
			contents, err := v.ReadAll()
			if err != nil {
				return transport.Options{}, fmt.Errorf("reading upload %s: %w", v.Path(), err)
			}
			parts = append(parts, transport.Part{
				Name:     multipartFileField,
				Contents: contents,
				Filename: v.Name(),
			})
		default:
			parts = append(parts, transport.Part{
				Name:     key,
				Contents: []byte(scalarString(v)),
			})
		}
	}

	return transport.Options{Mode: transport.BodyMultipart, Multipart: parts}, nil
}

func hasFile(data Data) bool {
	for _, v := range data {
		if _, ok := v.(FileSource); ok {
			return true
		}
	}
	return false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}
