// Package tracking talks to the plant's production-tracking portal.
//
// The portal exposes a batched serial-history lookup; the client wraps it with
// timeouts, optional bearer auth, and uniform error wrapping. It performs no
// interpretation of the history rows beyond JSON decoding; cycle semantics
// live in the cycle package.
package tracking
