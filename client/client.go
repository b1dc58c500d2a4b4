package client

import (
	"context"
	"net/http"

	"github.com/GriffinCanCode/wpapi/transport"
)

// Data holds request body fields. Values are scalars, JSON-encodable values,
// or FileSource for uploads.
type Data map[string]any

// Query holds query string parameters
type Query map[string]string

// Client is the API contract shared by APIClient and its decorators
type Client interface {
	Request(ctx context.Context, method, uri string, data Data, query Query) (Result, error)
	Get(ctx context.Context, uri string, query Query) (Result, error)
	Put(ctx context.Context, uri string, params Data) (Result, error)
	Post(ctx context.Context, uri string, params Data) (Result, error)
	Patch(ctx context.Context, uri string, params Data) (Result, error)
	Delete(ctx context.Context, uri string, query Query) (Result, error)
}

type requestFunc func(ctx context.Context, method, uri string, data Data, query Query) (Result, error)

// verbs implements the shortcut methods on top of a Request function
type verbs struct {
	request requestFunc
}

// Get issues a GET with query parameters
func (v verbs) Get(ctx context.Context, uri string, query Query) (Result, error) {
	return v.request(ctx, http.MethodGet, uri, nil, query)
}

// Put issues a PUT with a body
func (v verbs) Put(ctx context.Context, uri string, params Data) (Result, error) {
	return v.request(ctx, http.MethodPut, uri, params, nil)
}

// Post issues a POST with a body
func (v verbs) Post(ctx context.Context, uri string, params Data) (Result, error) {
	return v.request(ctx, http.MethodPost, uri, params, nil)
}

// Patch issues a PATCH with a body
func (v verbs) Patch(ctx context.Context, uri string, params Data) (Result, error) {
	return v.request(ctx, http.MethodPatch, uri, params, nil)
}

// Delete issues a DELETE with query parameters
func (v verbs) Delete(ctx context.Context, uri string, query Query) (Result, error) {
	return v.request(ctx, http.MethodDelete, uri, nil, query)
}

// APIClient dispatches requests through a Transport and classifies responses
type APIClient struct {
	verbs
	dispatcher *Dispatcher
}

// New creates a client on top of tr
func New(tr transport.Transport, opts ...Option) *APIClient {
	c := &APIClient{dispatcher: NewDispatcher(tr, opts...)}
	c.verbs = verbs{request: c.Request}
	return c
}

// Request normalizes the URI, sends the request and decodes the response
func (c *APIClient) Request(ctx context.Context, method, uri string, data Data, query Query) (Result, error) {
	uri = NormalizeURI(uri, query)

	resp, err := c.dispatcher.Dispatch(ctx, method, uri, data)
	if err != nil {
		return Result{}, err
	}

	return Classify(method, uri, resp)
}
