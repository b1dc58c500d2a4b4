package client

import (
	"context"

	"github.com/GriffinCanCode/wpapi/transport"
	"github.com/stretchr/testify/mock"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Send(ctx context.Context, method, uri string, opts transport.Options) (*transport.Response, error) {
	args := m.Called(method, uri, opts)
	resp, _ := args.Get(0).(*transport.Response)
	return resp, args.Error(1)
}

type mockClient struct {
	mock.Mock
	verbs
}

func newMockClient() *mockClient {
	m := &mockClient{}
	m.verbs = verbs{request: m.Request}
	return m
}

func (m *mockClient) Request(ctx context.Context, method, uri string, data Data, query Query) (Result, error) {
	args := m.Called(method, uri, data, query)
	res, _ := args.Get(0).(Result)
	return res, args.Error(1)
}

func jsonResponse(status int, body string) *transport.Response {
	return &transport.Response{StatusCode: status, Body: []byte(body)}
}

var okMessage = map[string]any{"message": "OK"}

// 1x1 transparent GIF
var spacerGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00, 0xff, 0xff, 0xff,
	0x00, 0x00, 0x00, 0x21, 0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}
