// Package transport is the HTTP capability the API client dispatches through.
//
// A Transport sends one (method, uri, options) request and returns the status
// code, headers and full body of whatever response the server produced. Non-2xx
// statuses are responses, not errors. Failures that happen before any response
// is received are returned as errors; the subset that happened while
// establishing the connection is marked with ConnectError so callers can retry
// them.
//
// Resty is the production implementation, built on go-resty/resty with a
// pooled transport from hashicorp/go-retryablehttp:
//   - Base URL and basic key/secret authentication
//   - JSON bodies encoded with bytedance/sonic
//   - Multipart bodies with per-file Content-Type detection
//   - X-Request-ID header on every attempt
//
// Example Usage:
//
//	tr := transport.NewResty(transport.Config{
//		BaseURL:  "https://shop.example.com/wp-json/",
//		Username: key,
//		Password: secret,
//	})
//	resp, err := tr.Send(ctx, "GET", "wc/v3/orders?status=processing", transport.Options{})
package transport
