package domain

import "time"

// Conflict records a local quote that was overwritten by a remote quote
// with the same text but a different category.
type Conflict struct {
	Local  Quote `json:"local"`
	Server Quote `json:"server"`
}

// ResolutionServerWins is the only resolution policy: the remote record replaces the local one.
const ResolutionServerWins = "server_wins"

// ConflictRecord is the persisted audit entry for a resolved Conflict.
type ConflictRecord struct {
	ID         string    `json:"id"`
	Local      Quote     `json:"local"`
	Server     Quote     `json:"server"`
	Resolution string    `json:"resolution"`
	DetectedAt time.Time `json:"detectedAt"`
}

// MergeOutcome summarizes a single merge pass.
type MergeOutcome struct {
	Added     int
	Conflicts []Conflict
}

// Merge folds remote into local using server-wins resolution.
//
// Each remote quote is matched against the first local quote with the same
// text (case-insensitive). No match appends the remote quote. A match with a
// different category replaces the local quote with the full remote record and
// records a Conflict. A match with the same category is left alone.
//
// Remote quotes are processed in order, so a later remote quote can match one
// appended or replaced earlier in the same pass.
func Merge(local *Collection, remote []Quote) MergeOutcome {
	var out MergeOutcome

	for _, r := range remote {
		i := local.IndexOfText(r)

		switch {
		case i < 0:
			local.Append(r)
			out.Added++
		case local.At(i).Category != r.Category:
			out.Conflicts = append(out.Conflicts, Conflict{Local: local.At(i), Server: r})
			local.Replace(i, r)
		}
	}

	return out
}
