package domain

import "strings"

// Reasons for rejecting a payload as a whole (ImportError.Index == -1).
const (
	ImportReasonNotArray  = "expected a JSON array"
	ImportReasonMalformed = "malformed JSON"
	ImportReasonTooLarge  = "payload too large"
)

// ImportRecord is one element of an import payload. Nil fields were absent
// or null in the source document.
type ImportRecord struct {
	Text     *string
	Category *string
}

// ImportQuotes validates a whole payload and converts it. Any missing or
// blank field rejects the entire payload; nothing is partially imported.
func ImportQuotes(records []ImportRecord) ([]Quote, error) {
	out := make([]Quote, 0, len(records))

	for i, r := range records {
		switch {
		case r.Text == nil:
			return nil, NewImportError(i, "text", "is required")
		case r.Category == nil:
			return nil, NewImportError(i, "category", "is required")
		case strings.TrimSpace(*r.Text) == "":
			return nil, NewImportError(i, "text", "must not be blank")
		case strings.TrimSpace(*r.Category) == "":
			return nil, NewImportError(i, "category", "must not be blank")
		}

		out = append(out, Quote{Text: *r.Text, Category: *r.Category})
	}

	return out, nil
}
