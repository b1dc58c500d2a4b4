package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/GriffinCanCode/wpapi/apierr"
	"github.com/GriffinCanCode/wpapi/client"
	"github.com/GriffinCanCode/wpapi/internal/config"
	"github.com/GriffinCanCode/wpapi/internal/logging"
	"github.com/GriffinCanCode/wpapi/internal/monitoring"
	"github.com/GriffinCanCode/wpapi/transport"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
)

// Exit codes
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitNotFound = 2
)

type options struct {
	configPath   string
	url          string
	key          string
	secret       string
	successLevel string
	logLevel     string
	development  bool
	logOutput    []string
	watch        time.Duration
}

// NewRootCommand builds the wpcall command
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wpcall METHOD URI [ITEM ...]",
		Short: "Call a WordPress / WooCommerce REST endpoint",
		Long: `wpcall - call a WordPress / WooCommerce REST endpoint and print the JSON result

Items:
  key=value    query parameter for GET and DELETE, body field otherwise
  key:=json    body field holding a raw JSON value
  field@path   file upload (switches the body to multipart)

Exit status is 2 when the resource does not exist and 1 on any other failure.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .toml or .json)")
	flags.StringVarP(&opts.url, "url", "u", "", "Site REST root, e.g. https://shop.example.com/wp-json")
	flags.StringVar(&opts.key, "key", "", "WooCommerce consumer key")
	flags.StringVar(&opts.secret, "secret", "", "WooCommerce consumer secret")
	flags.StringVar(&opts.successLevel, "success-level", "", "Log level for successful calls")
	flags.StringVar(&opts.logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")
	flags.BoolVar(&opts.development, "dev", false, "Human readable logs")
	flags.StringSliceVar(&opts.logOutput, "log-output", nil, "Log sinks (file paths, stdout, stderr)")
	flags.DurationVar(&opts.watch, "watch", 0, "Repeat the call at this interval until interrupted")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wpcall %s (commit: %s)\n", version, commit)
		},
	})

	return cmd
}

// Execute runs the command, stopping on SIGINT or SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case apierr.IsNotFound(err):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.url != "" {
		cfg.API.URL = opts.url
	}
	if opts.key != "" {
		cfg.API.ConsumerKey = opts.key
	}
	if opts.secret != "" {
		cfg.API.ConsumerSecret = opts.secret
	}
	if opts.successLevel != "" {
		cfg.API.SuccessLevel = opts.successLevel
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if len(opts.logOutput) > 0 {
		cfg.Logging.Output = opts.logOutput
	}

	return cfg, cfg.Validate()
}

// loggerConfig maps the logging section onto the logger; --dev forces
// development output whatever the file or environment says.
func loggerConfig(lc config.LogConfig, dev bool) logging.Config {
	cfg := logging.Config{
		Level:       lc.Level,
		Development: lc.Development,
		OutputPaths: lc.Output,
	}
	if dev {
		cfg = logging.DevelopmentConfig(cfg)
	}
	return cfg
}

func run(ctx context.Context, out io.Writer, opts *options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	method := strings.ToUpper(args[0])
	uri := args[1]
	data, query, err := parseItems(method, args[2:])
	if err != nil {
		return err
	}

	logger, err := logging.New(loggerConfig(cfg.Logging, opts.development))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics := monitoring.NewMetrics()
	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr, metrics, logger)
		defer stop()
	}

	c, err := client.NewFactory(
		client.WithLogger(logger),
		client.WithRecorder(metrics),
		client.WithSuccessLevel(client.Level(cfg.API.SuccessLevel)),
		client.WithTransportConfig(transport.Config{
			Timeout:   cfg.HTTP.Timeout.Std(),
			UserAgent: cfg.HTTP.UserAgent,
		}),
		client.WithClientOptions(
			client.WithMaxAttempts(cfg.HTTP.MaxAttempts),
			client.WithBackoff(client.ExponentialBackoff(cfg.HTTP.RetryWaitMin.Std(), cfg.HTTP.RetryWaitMax.Std())),
		),
	).FromWooCommerceCredentials(cfg.API.ConsumerKey, cfg.API.ConsumerSecret, cfg.API.URL)
	if err != nil {
		return err
	}

	if opts.watch <= 0 {
		return call(ctx, out, c, method, uri, data, query)
	}

	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()
	for {
		if err := call(ctx, out, c, method, uri, data, query); err != nil && ctx.Err() == nil {
			// keep polling; the failure is already logged
			logger.Debug("watch iteration failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func call(ctx context.Context, out io.Writer, c client.Client, method, uri string, data client.Data, query client.Query) error {
	res, err := c.Request(ctx, method, uri, data, query)
	if err != nil {
		return err
	}

	pretty, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(pretty))
	return err
}

func serveMetrics(addr string, m *monitoring.Metrics, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
