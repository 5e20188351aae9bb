// Package apiclient is the single outbound HTTP client for the store REST API.
//
// Every request is built from one base URL plus a path, carries a JSON body
// when one is given, and gets an "Authorization: Bearer <token>" header when
// the configured TokenSource returns a token. The token source is consulted on
// every call, so logging in or out takes effect without rebuilding the client.
//
// # Errors
//
// Failures reach the caller in exactly two shapes:
//
//   - *TransportError: no response was received.
//   - *StatusError: a response arrived with a non-2xx status.
//
// Nothing is retried. Callers that want retries layer them on top.
//
// # Usage
//
//	c := apiclient.New("http://localhost:8080",
//	    apiclient.WithTokenSource(store.TokenSource()),
//	    apiclient.WithLogger(logger),
//	)
//	var products []types.Product
//	err := c.Do(ctx, http.MethodGet, "/products/all", nil, &products)
package apiclient
