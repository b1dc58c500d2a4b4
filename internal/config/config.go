package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all client configuration.
type Config struct {
	API     APIConfig     `yaml:"api" toml:"api" json:"api"`
	HTTP    HTTPConfig    `yaml:"http" toml:"http" json:"http"`
	Logging LogConfig     `yaml:"logging" toml:"logging" json:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics" json:"metrics"`
}

// APIConfig holds the target site and credentials.
type APIConfig struct {
	URL            string `envconfig:"WPAPI_URL" yaml:"url" toml:"url" json:"url"`
	ConsumerKey    string `envconfig:"WPAPI_CONSUMER_KEY" yaml:"consumer_key" toml:"consumer_key" json:"consumer_key"`
	ConsumerSecret string `envconfig:"WPAPI_CONSUMER_SECRET" yaml:"consumer_secret" toml:"consumer_secret" json:"consumer_secret"`
	SuccessLevel   string `envconfig:"WPAPI_SUCCESS_LEVEL" yaml:"success_level" toml:"success_level" json:"success_level"`
}

// HTTPConfig holds transport and retry settings.
type HTTPConfig struct {
	Timeout      Duration `envconfig:"WPAPI_TIMEOUT" yaml:"timeout" toml:"timeout" json:"timeout"`
	MaxAttempts  int      `envconfig:"WPAPI_MAX_ATTEMPTS" yaml:"max_attempts" toml:"max_attempts" json:"max_attempts"`
	RetryWaitMin Duration `envconfig:"WPAPI_RETRY_WAIT_MIN" yaml:"retry_wait_min" toml:"retry_wait_min" json:"retry_wait_min"`
	RetryWaitMax Duration `envconfig:"WPAPI_RETRY_WAIT_MAX" yaml:"retry_wait_max" toml:"retry_wait_max" json:"retry_wait_max"`
	UserAgent    string   `envconfig:"WPAPI_USER_AGENT" yaml:"user_agent" toml:"user_agent" json:"user_agent"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" yaml:"level" toml:"level" json:"level"`
	Development bool   `envconfig:"LOG_DEV" yaml:"development" toml:"development" json:"development"`
	// Output lists zap sinks (file paths, stdout, stderr); comma separated in the environment.
	Output []string `envconfig:"WPAPI_LOG_OUTPUT" yaml:"output" toml:"output" json:"output"`
}

// MetricsConfig holds the Prometheus endpoint address. Empty disables it.
type MetricsConfig struct {
	Addr string `envconfig:"WPAPI_METRICS_ADDR" yaml:"addr" toml:"addr" json:"addr"`
}

// Duration is a time.Duration read from strings such as "30s"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the standard library duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load loads configuration from environment variables over the defaults.
func Load() (*Config, error) {
	cfg := Default()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads a YAML, TOML or JSON file over the defaults, then applies
// environment variables on top.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = sonic.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			SuccessLevel: "info",
		},
		HTTP: HTTPConfig{
			Timeout:      Duration(30 * time.Second),
			MaxAttempts:  5,
			RetryWaitMin: Duration(50 * time.Millisecond),
			RetryWaitMax: Duration(time.Second),
			UserAgent:    "wpapi-go/1.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate reports configuration that cannot produce a working client.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.URL) == "" {
		errs = append(errs, errors.New("api url required (WPAPI_URL)"))
	}
	if c.HTTP.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max attempts must be at least 1, got %d", c.HTTP.MaxAttempts))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.HTTP.RetryWaitMax < c.HTTP.RetryWaitMin {
		errs = append(errs, errors.New("retry_wait_max must not be below retry_wait_min"))
	}
	return errors.Join(errs...)
}
