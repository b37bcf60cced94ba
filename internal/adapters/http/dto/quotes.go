package dto

import (
	"time"

	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// AddQuoteRequest is the body of POST /api/v1/quotes.
type AddQuoteRequest struct {
	Text     string `json:"text"     validate:"required,notblank"`
	Category string `json:"category" validate:"required,notblank"`
}

// ListQuotesRequest is the query of GET /api/v1/quotes.
type ListQuotesRequest struct {
	PageRequest

	// Category filters the listing; "" and "all" list everything.
	Category string `form:"category"`
}

// RandomQuoteRequest is the query of GET /api/v1/quotes/random.
// An absent category falls back to the saved filter.
type RandomQuoteRequest struct {
	Category *string `form:"category"`
}

// QuoteResponse is a quote on the wire.
type QuoteResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{Text: q.Text, Category: q.Category}
}

// NewQuoteResponses converts a slice of domain quotes. Never returns nil.
func NewQuoteResponses(qs []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, NewQuoteResponse(q))
	}

	return out
}

// CategoriesResponse lists the distinct categories and the saved filter.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

// ImportResponse reports a successful import.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// NotificationResponse is a user-facing message on the wire.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewNotificationResponses converts board notifications. Never returns nil.
func NewNotificationResponses(ns []ports.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Level:     string(n.Level),
			CreatedAt: n.CreatedAt,
			ExpiresAt: n.ExpiresAt,
		})
	}

	return out
}
