// Package domain contains core business entities and rules.
package domain

import "strings"

// CategoryAll is the filter value that selects every category.
const CategoryAll = "all"

// Quote is a single quotation and the category it is filed under.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// NewQuote trims both fields and validates the result.
func NewQuote(text, category string) (Quote, error) {
	q := Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if err := q.Validate(); err != nil {
		return Quote{}, err
	}

	return q, nil
}

// Validate reports whether both fields are non-empty.
func (q Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if strings.TrimSpace(q.Category) == "" {
		return NewValidationError("category", "must not be empty")
	}

	return nil
}

// SameText reports whether two quotes carry the same text, ignoring case.
// This is the identity used when merging remote quotes into the collection.
func (q Quote) SameText(other Quote) bool {
	return strings.ToLower(q.Text) == strings.ToLower(other.Text)
}

// DefaultQuotes returns the collection a fresh installation starts with.
func DefaultQuotes() []Quote {
	return []Quote{
		{Text: "The only way to do great work is to love what you do.", Category: "Motivation"},
		{Text: "Innovation distinguishes between a leader and a follower.", Category: "Leadership"},
		{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
		{Text: "The future belongs to those who believe in the beauty of their dreams.", Category: "Inspiration"},
		{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Category: "Motivation"},
		{Text: "Be yourself; everyone else is already taken.", Category: "Life"},
		{Text: "The best way to predict the future is to create it.", Category: "Leadership"},
		{Text: "Believe you can and you're halfway there.", Category: "Inspiration"},
	}
}
