package domain

// SyncStatus is the outcome category of a sync run.
type SyncStatus string

// Sync outcomes.
const (
	SyncNoData   SyncStatus = "no_data"
	SyncFailed   SyncStatus = "failed"
	SyncResolved SyncStatus = "resolved"
	SyncSkipped  SyncStatus = "skipped"
)

// SyncResult reports what a sync run did.
type SyncResult struct {
	Status    SyncStatus `json:"status"`
	Conflicts int        `json:"conflicts"`
	Added     int        `json:"added"`
	Reason    string     `json:"reason,omitempty"`

	// Records holds the conflicts resolved in this run, in detection order.
	Records []Conflict `json:"records,omitempty"`
}

// NoData is the result of a fetch that returned nothing.
func NoData() SyncResult {
	return SyncResult{Status: SyncNoData}
}

// Failed is the result of a fetch or merge that could not complete.
func Failed(reason string) SyncResult {
	return SyncResult{Status: SyncFailed, Reason: reason}
}

// Skipped is the result of a trigger that arrived while another run was in flight.
func Skipped() SyncResult {
	return SyncResult{Status: SyncSkipped, Reason: "sync already in progress"}
}

// Resolved is the result of a completed merge.
func Resolved(outcome MergeOutcome) SyncResult {
	return SyncResult{
		Status:    SyncResolved,
		Conflicts: len(outcome.Conflicts),
		Added:     outcome.Added,
		Records:   outcome.Conflicts,
	}
}

// Succeeded reports whether the run merged remote data.
func (r SyncResult) Succeeded() bool {
	return r.Status == SyncResolved
}
