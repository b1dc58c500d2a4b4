// Package monitoring exposes Prometheus metrics for API calls.
//
// Metrics satisfies client.RetryRecorder, so it can be handed to
// client.WithRecorder directly.
//
// Metrics:
//   - wpapi_requests_total{method,outcome}
//   - wpapi_request_duration_seconds{method}
//   - wpapi_connect_retries_total{method}
package monitoring
