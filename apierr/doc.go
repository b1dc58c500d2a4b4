// Package apierr defines the closed set of failures a WordPress REST call can
// produce.
//
// Kinds:
//   - NotFoundError: the server answered 404
//   - ProtocolError: any other non-2xx status, an undecodable 2xx body, or a
//     2xx body carrying an embedded WP_Error payload
//   - TransportError: the request never produced a response
//
// Every kind carries the method, the normalized URI and, when a response was
// received, the raw body. Bodies are never truncated.
//
// Example Usage:
//
//	res, err := c.Get(ctx, "wc/v3/products/42", nil)
//	if apierr.IsNotFound(err) {
//		return nil, nil
//	}
package apierr
