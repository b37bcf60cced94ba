// Package clients provides the instrumented HTTP client used to reach the
// remote quote source.
package clients

import "errors"

// Transport-level failures. The ACL layer translates them into domain errors.
var (
	// ErrCircuitOpen means the circuit breaker is rejecting calls.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
