package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(context.Context) error { return s.err }

type blockingChecker struct{ name string }

func (b *blockingChecker) Name() string { return b.name }

func (b *blockingChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "sqlite"}))
	require.NoError(t, registry.Register(&stubChecker{name: "remote"}))

	err := registry.Register(&stubChecker{name: "sqlite"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "sqlite")

	assert.Equal(t, []string{"remote", "sqlite"}, registry.Names())
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantStatus HealthStatus
		wantMsgs   map[string]string
	}{
		{
			name:       "no checkers",
			wantStatus: HealthStatusHealthy,
			wantMsgs:   map[string]string{},
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "sqlite"},
				&stubChecker{name: "remote"},
			},
			wantStatus: HealthStatusHealthy,
			wantMsgs:   map[string]string{"sqlite": "", "remote": ""},
		},
		{
			name: "one unhealthy",
			checkers: []HealthChecker{
				&stubChecker{name: "sqlite"},
				&stubChecker{name: "remote", err: errors.New("circuit open")},
			},
			wantStatus: HealthStatusUnhealthy,
			wantMsgs:   map[string]string{"sqlite": "", "remote": "circuit open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			require.NotNil(t, result)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.Timestamp.IsZero())
			require.Len(t, result.Checks, len(tt.wantMsgs))

			for name, msg := range tt.wantMsgs {
				assert.Equal(t, msg, result.Checks[name].Message, name)
			}
		})
	}
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&blockingChecker{name: "slow"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow"].Message, "context canceled")
}

func TestStaticFeatureFlags(t *testing.T) {
	ctx := context.Background()
	flags := NewStaticFeatureFlags(map[string]bool{"Conflict_Audit": false})

	assert.False(t, flags.IsEnabled(ctx, "conflict_audit", true))
	assert.True(t, flags.IsEnabled(ctx, "unknown", true))
	assert.False(t, flags.IsEnabled(ctx, "unknown", false))

	flags.Set("conflict_audit", true)
	assert.True(t, flags.IsEnabled(ctx, "CONFLICT_AUDIT", false))
}
