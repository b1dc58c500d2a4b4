package client

import (
	"context"
	"time"

	"github.com/GriffinCanCode/wpapi/apierr"
)

// Recorder receives per-call measurements
type Recorder interface {
	ObserveRequest(method, outcome string, elapsed time.Duration)
}

// RetryRecorder additionally counts connection retries
type RetryRecorder interface {
	Recorder
	ObserveRetry(method string)
}

// Outcome labels
const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeProtocol  = "protocol_error"
	OutcomeTransport = "transport_error"
	OutcomeOther     = "other_error"
)

// InstrumentedClient records the duration and outcome of every call
type InstrumentedClient struct {
	verbs
	inner    Client
	recorder Recorder
}

// NewInstrumentedClient wraps inner
func NewInstrumentedClient(inner Client, recorder Recorder) *InstrumentedClient {
	c := &InstrumentedClient{inner: inner, recorder: recorder}
	c.verbs = verbs{request: c.Request}
	return c
}

// Request forwards to the wrapped client and records the outcome
func (c *InstrumentedClient) Request(ctx context.Context, method, uri string, data Data, query Query) (Result, error) {
	start := time.Now()
	result, err := c.inner.Request(ctx, method, uri, data, query)
	c.recorder.ObserveRequest(method, Outcome(err), time.Since(start))
	return result, err
}

// Outcome maps an error to its metric label
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	switch apierr.KindOf(err) {
	case apierr.KindNotFound:
		return OutcomeNotFound
	case apierr.KindProtocol:
		return OutcomeProtocol
	case apierr.KindTransport:
		return OutcomeTransport
	default:
		return OutcomeOther
	}
}
