package client

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/wpapi/transport"
	"go.uber.org/zap"
)

// Factory builds preconfigured clients
type Factory struct {
	logger       *zap.Logger
	recorder     Recorder
	successLevel Level
	transport    transport.Config
	options      []Option
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger wraps built clients in a LoggedClient
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

// WithRecorder wraps built clients in an InstrumentedClient
func WithRecorder(r Recorder) FactoryOption {
	return func(f *Factory) { f.recorder = r }
}

// WithSuccessLevel sets the level for successful calls on logged clients
func WithSuccessLevel(level Level) FactoryOption {
	return func(f *Factory) { f.successLevel = level }
}

// WithTransportConfig sets timeout and user agent for built transports.
// BaseURL and credentials are always taken from the build call.
func WithTransportConfig(cfg transport.Config) FactoryOption {
	return func(f *Factory) { f.transport = cfg }
}

// WithClientOptions passes dispatcher options to built clients
func WithClientOptions(opts ...Option) FactoryOption {
	return func(f *Factory) { f.options = append(f.options, opts...) }
}

// NewFactory creates a factory
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		successLevel: LevelInfo,
		transport:    transport.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromWooCommerceCredentials builds a client authenticating with a
// WooCommerce consumer key and secret against baseURL, the site's REST root
// (e.g. https://shop.example.com/wp-json). Relative URIs always resolve
// under that root: "wc/v3/orders" and "/wc/v3/orders" reach the same
// endpoint, a leading slash never replaces the root's path.
func (f *Factory) FromWooCommerceCredentials(consumerKey, consumerSecret, baseURL string) (Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base url required")
	}

	cfg := f.transport
	cfg.BaseURL = NormalizeBaseURL(baseURL)
	cfg.Username = consumerKey
	cfg.Password = consumerSecret

	return f.Build(transport.NewResty(cfg))
}

// Build wraps tr with the factory's decorators
func (f *Factory) Build(tr transport.Transport) (Client, error) {
	opts := append([]Option{}, f.options...)
	if f.logger != nil {
		logger := f.logger
		opts = append(opts, WithRetryHook(func(method, uri string, attempt int, err error) {
			logger.Debug("[API] Retrying after connection failure",
				zap.String("method", method),
				zap.String("uri", uri),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}))
	}
	if rr, ok := f.recorder.(RetryRecorder); ok {
		opts = append(opts, WithRetryHook(func(method, _ string, _ int, _ error) {
			rr.ObserveRetry(method)
		}))
	}

	var c Client = New(tr, opts...)

	if f.recorder != nil {
		c = NewInstrumentedClient(c, f.recorder)
	}

	if f.logger != nil {
		logged := NewLoggedClient(c, f.logger)
		if err := logged.SetSuccessfulRequestLevel(f.successLevel); err != nil {
			return nil, err
		}
		c = logged
	}

	return c, nil
}

// NormalizeBaseURL ensures exactly one trailing slash. The resty transport
// joins URIs onto the root itself, so this only canonicalizes the value.
func NormalizeBaseURL(url string) string {
	return strings.TrimRight(url, "/") + "/"
}
