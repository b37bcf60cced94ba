// Package notify holds the transient notification board users poll for
// sync and import feedback. Entries disappear on their own after a TTL.
package notify

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotesync/internal/platform/logging"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// Board is an in-memory ports.Notifier with auto-expiry and a size cap.
// The oldest entry is evicted when the board is full.
type Board struct {
	mu       sync.Mutex
	entries  []ports.Notification
	ttl      time.Duration
	capacity int

	now func() time.Time
}

var _ ports.Notifier = (*Board)(nil)

// NewBoard creates a Board.
func NewBoard(ttl time.Duration, capacity int) *Board {
	if capacity <= 0 {
		capacity = 1
	}

	return &Board{ttl: ttl, capacity: capacity, now: time.Now}
}

// Notify posts a message. It never blocks on I/O.
func (b *Board) Notify(ctx context.Context, message string, level ports.NotificationLevel) {
	now := b.now()
	n := ports.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Level:     level,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}

	b.mu.Lock()
	b.entries = append(b.pruneLocked(now), n)
	if over := len(b.entries) - b.capacity; over > 0 {
		b.entries = slices.Delete(b.entries, 0, over)
	}
	b.mu.Unlock()

	logging.FromContext(ctx).Log(ctx, levelFor(level), message,
		slog.String("notification_id", n.ID),
		slog.String("notification_level", string(level)),
	)
}

// Active returns the unexpired notifications, oldest first.
func (b *Board) Active() []ports.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = b.pruneLocked(b.now())

	return slices.Clone(b.entries)
}

// Latest returns the newest unexpired notification.
func (b *Board) Latest() (ports.Notification, bool) {
	active := b.Active()
	if len(active) == 0 {
		return ports.Notification{}, false
	}

	return active[len(active)-1], true
}

func (b *Board) pruneLocked(now time.Time) []ports.Notification {
	return slices.DeleteFunc(b.entries, func(n ports.Notification) bool {
		return !now.Before(n.ExpiresAt)
	})
}

func levelFor(l ports.NotificationLevel) slog.Level {
	switch l {
	case ports.LevelError:
		return slog.LevelError
	case ports.LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
