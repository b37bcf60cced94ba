package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotesync/internal/platform/logging"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBoard(ttl time.Duration, capacity int) (*Board, *clock) {
	c := &clock{t: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	b := NewBoard(ttl, capacity)
	b.now = c.now

	return b, c
}

func TestBoard_Expiry(t *testing.T) {
	b, c := newTestBoard(5*time.Second, 10)
	ctx := context.Background()

	b.Notify(ctx, "Syncing with server...", ports.LevelInfo)
	c.advance(3 * time.Second)
	b.Notify(ctx, "Synced successfully! No conflicts detected.", ports.LevelSuccess)

	active := b.Active()
	require.Len(t, active, 2)
	assert.Equal(t, active[0].CreatedAt.Add(5*time.Second), active[0].ExpiresAt)

	c.advance(2 * time.Second)

	active = b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Synced successfully! No conflicts detected.", active[0].Message)

	c.advance(3 * time.Second)
	assert.Empty(t, b.Active())

	_, ok := b.Latest()
	assert.False(t, ok)
}

func TestBoard_Capacity(t *testing.T) {
	b, _ := newTestBoard(time.Minute, 2)
	ctx := context.Background()

	b.Notify(ctx, "one", ports.LevelInfo)
	b.Notify(ctx, "two", ports.LevelInfo)
	b.Notify(ctx, "three", ports.LevelError)

	active := b.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "two", active[0].Message)

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, "three", latest.Message)
	assert.Equal(t, ports.LevelError, latest.Level)
	assert.NotEmpty(t, latest.ID)
}

func TestBoard_LogsAtMatchingLevel(t *testing.T) {
	var buf bytes.Buffer

	ctx := logging.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	b, _ := newTestBoard(time.Second, 5)

	b.Notify(ctx, "Failed to sync with server. Check your connection.", ports.LevelError)

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"notification_level":"error"`)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelFor(ports.LevelInfo))
	assert.Equal(t, slog.LevelInfo, levelFor(ports.LevelSuccess))
	assert.Equal(t, slog.LevelWarn, levelFor(ports.LevelWarning))
	assert.Equal(t, slog.LevelError, levelFor(ports.LevelError))
}
