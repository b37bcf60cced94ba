package dto

import (
	"time"

	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// SyncResultResponse is the outcome of one sync run.
type SyncResultResponse struct {
	Status    string             `json:"status"`
	Added     int                `json:"added"`
	Conflicts int                `json:"conflicts"`
	Reason    string             `json:"reason,omitempty"`
	Message   string             `json:"message"`
	Resolved  []ConflictResponse `json:"resolved,omitempty"`
}

// ConflictResponse is one server-wins resolution.
type ConflictResponse struct {
	ID         string        `json:"id,omitempty"`
	Local      QuoteResponse `json:"local"`
	Server     QuoteResponse `json:"server"`
	Resolution string        `json:"resolution"`
	DetectedAt *time.Time    `json:"detectedAt,omitempty"`
}

// NewSyncResultResponse converts a sync result. message is the text the
// user was shown for it.
func NewSyncResultResponse(r domain.SyncResult, message string) SyncResultResponse {
	resp := SyncResultResponse{
		Status:    string(r.Status),
		Added:     r.Added,
		Conflicts: r.Conflicts,
		Reason:    r.Reason,
		Message:   message,
	}

	for _, c := range r.Records {
		resp.Resolved = append(resp.Resolved, ConflictResponse{
			Local:      NewQuoteResponse(c.Local),
			Server:     NewQuoteResponse(c.Server),
			Resolution: domain.ResolutionServerWins,
		})
	}

	return resp
}

// NewConflictResponses converts audit records. Never returns nil.
func NewConflictResponses(records []domain.ConflictRecord) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(records))
	for _, r := range records {
		at := r.DetectedAt
		out = append(out, ConflictResponse{
			ID:         r.ID,
			Local:      NewQuoteResponse(r.Local),
			Server:     NewQuoteResponse(r.Server),
			Resolution: r.Resolution,
			DetectedAt: &at,
		})
	}

	return out
}

// ConflictsRequest is the query of GET /api/v1/conflicts.
type ConflictsRequest struct {
	Limit int `form:"limit" json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// AutoSyncRequest is the body of PUT /api/v1/sync/auto.
type AutoSyncRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// AutoSyncResponse reports the scheduler state.
type AutoSyncResponse struct {
	Enabled  bool   `json:"enabled"`
	Interval string `json:"interval"`
	Syncing  bool   `json:"syncing"`
	Message  string `json:"message"`
}

// PushResponse reports a PostLocal call.
type PushResponse struct {
	ID       string `json:"id,omitempty"`
	Accepted int    `json:"accepted"`
	Message  string `json:"message"`
}

// NewPushResponse converts a post receipt.
func NewPushResponse(r *ports.PostReceipt, message string) PushResponse {
	return PushResponse{ID: r.ID, Accepted: r.Accepted, Message: message}
}
