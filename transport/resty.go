package transport

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/wpapi/internal/id"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// RequestIDHeader carries the per-attempt request ID
const RequestIDHeader = "X-Request-ID"

// Config configures the resty transport
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns transport defaults
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: "wpapi-go/1.0",
	}
}

// Resty implements Transport on top of go-resty
type Resty struct {
	Resty *resty.Client
}

// NewResty creates a transport. Retries are left to the caller.
func NewResty(cfg Config) *Resty {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	// Pooled transport only, resty and the dispatcher own retries
	pooled := retryablehttp.NewClient()
	pooled.RetryMax = 0
	pooled.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTransport(pooled.HTTPClient.Transport)

	if cfg.BaseURL != "" {
		restyClient.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Username != "" || cfg.Password != "" {
		restyClient.SetBasicAuth(cfg.Username, cfg.Password)
	}

	restyClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.SetHeader(RequestIDHeader, id.NewRequestID().String())
		}
		return nil
	})

	return &Resty{Resty: restyClient}
}

// Send executes one request. Status codes are never turned into errors.
func (t *Resty) Send(ctx context.Context, method, uri string, opts Options) (*Response, error) {
	req := t.Resty.R().SetContext(ctx)

	switch opts.Mode {
	case BodyJSON:
		req.SetHeader("Content-Type", "application/json").SetBody(opts.JSON)
	case BodyMultipart:
		fields := make([]*resty.MultipartField, 0, len(opts.Multipart))
		for _, part := range opts.Multipart {
			field := &resty.MultipartField{
				Param:  part.Name,
				Reader: bytes.NewReader(part.Contents),
			}
			if part.Filename != "" {
				field.FileName = part.Filename
				field.ContentType = mimetype.Detect(part.Contents).String()
			}
			fields = append(fields, field)
		}
		req.SetMultipartFields(fields...)
	}

	resp, err := req.Execute(strings.ToUpper(method), uri)
	if err != nil {
		return nil, classify(err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%s %s: empty response", method, uri)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
