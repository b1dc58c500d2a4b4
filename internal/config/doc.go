// Package config provides 12-factor configuration for the API client CLI.
//
// Values start from Default(), are optionally overridden by a YAML, TOML or
// JSON file, and finally by environment variables.
//
// Configuration Sections:
//   - API: site URL, WooCommerce consumer key and secret, success log level
//   - HTTP: timeout, attempt limit, retry backoff bounds, user agent
//   - Logging: log level and output format
//   - Metrics: Prometheus listen address
//
// Example Usage:
//
//	cfg, err := config.LoadFile("wpapi.yaml")
//	if err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// Environment Variables:
//   - WPAPI_URL, WPAPI_CONSUMER_KEY, WPAPI_CONSUMER_SECRET, WPAPI_SUCCESS_LEVEL
//   - WPAPI_TIMEOUT, WPAPI_MAX_ATTEMPTS, WPAPI_RETRY_WAIT_MIN, WPAPI_RETRY_WAIT_MAX, WPAPI_USER_AGENT
//   - LOG_LEVEL, LOG_DEV
//   - WPAPI_METRICS_ADDR
package config
