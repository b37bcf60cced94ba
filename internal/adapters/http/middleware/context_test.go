package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextIDs(t *testing.T) {
	ctx := ContextWithCorrelationID(ContextWithRequestID(context.Background(), "req-1"), "corr-1")

	// A sync started from a request derives its context from the request's.
	derived, cancel := context.WithCancel(ctx)
	defer cancel()

	assert.Equal(t, "req-1", RequestIDFromContext(derived))
	assert.Equal(t, "corr-1", CorrelationIDFromContext(derived))
}

func TestContextIDs_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil guard
}

func TestContextIDs_Overwrite(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "first")
	ctx = ContextWithRequestID(ctx, "second")

	assert.Equal(t, "second", RequestIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(ctx))
}
