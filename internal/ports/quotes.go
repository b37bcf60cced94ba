// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Every method takes a context first and speaks domain types only.
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

// RemoteQuoteSource is the remote end of synchronization.
type RemoteQuoteSource interface {
	// FetchRemote returns a bounded batch of remote quotes in source order.
	// Returns a domain.FetchError (errors.Is domain.ErrUnavailable) on failure.
	FetchRemote(ctx context.Context) ([]domain.Quote, error)

	// PostLocal sends the local quotes to the remote source.
	PostLocal(ctx context.Context, quotes []domain.Quote) (*PostReceipt, error)
}

// PostReceipt is the remote acknowledgement of a PostLocal call.
type PostReceipt struct {
	// ID is whatever identifier the remote assigned, if any.
	ID       string
	Accepted int
}

// QuoteStore persists the whole collection under a single key.
// SaveAll replaces the stored collection; the last write wins.
type QuoteStore interface {
	// LoadAll returns the stored quotes, or an empty slice when nothing is stored.
	LoadAll(ctx context.Context) ([]domain.Quote, error)
	SaveAll(ctx context.Context, quotes []domain.Quote) error
}

// Preference keys.
const (
	PrefSelectedCategory = "selectedCategory"
	PrefLastViewedQuote  = "lastViewedQuote"
)

// PreferenceStore keeps small string preferences such as the selected category filter.
type PreferenceStore interface {
	// GetPreference returns domain.ErrNotFound when key was never set.
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

// ConflictLog is the audit trail of resolved conflicts.
type ConflictLog interface {
	AppendConflicts(ctx context.Context, records []domain.ConflictRecord) error

	// RecentConflicts returns at most limit records, newest first.
	RecentConflicts(ctx context.Context, limit int) ([]domain.ConflictRecord, error)
}

// NotificationLevel is the severity of a user-facing message.
type NotificationLevel string

// Notification levels.
const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        string            `json:"id"`
	Message   string            `json:"message"`
	Level     NotificationLevel `json:"level"`
	CreatedAt time.Time         `json:"createdAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// Notifier is a fire-and-forget sink for user-facing messages.
// Implementations must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, message string, level NotificationLevel)
}
