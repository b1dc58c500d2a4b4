// Package client is a thin REST client for the WordPress / WooCommerce JSON API.
//
// A call flows through four stages:
//   - URI normalization: an embedded query string is merged with the explicit
//     query (explicit keys win) and re-encoded canonically
//   - Dispatch: data becomes a JSON body, or a multipart body when it holds
//     any FileSource; the request is sent, retrying only connection failures
//     up to MaxAttempts (5 by default)
//   - Classification: 404 becomes NotFoundError, other non-2xx statuses,
//     non object/array bodies and embedded WP_Error payloads become
//     ProtocolError
//   - Decoding: the JSON object or array is returned as a Result
//
// Decorators wrap any Client without changing results or errors:
//   - LoggedClient: one zap record per call
//   - InstrumentedClient: Prometheus-style call metrics
//
// Example Usage:
//
//	c, err := client.NewFactory(client.WithLogger(logger)).
//		FromWooCommerceCredentials(key, secret, "https://shop.example.com/wp-json")
//	if err != nil {
//		return err
//	}
//	orders, err := c.Get(ctx, "wc/v3/orders", client.Query{"status": "processing"})
package client
