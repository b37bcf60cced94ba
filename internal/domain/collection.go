package domain

import "math/rand/v2"

// Collection is the ordered set of quotes a user owns.
// Duplicates by text are allowed; only a merge collapses them.
// A Collection is not safe for concurrent use; the owning service serializes access.
type Collection struct {
	quotes []Quote
}

// NewCollection returns a collection holding a copy of quotes.
func NewCollection(quotes []Quote) *Collection {
	c := &Collection{quotes: make([]Quote, 0, len(quotes))}
	c.quotes = append(c.quotes, quotes...)

	return c
}

// Len returns the number of quotes.
func (c *Collection) Len() int {
	return len(c.quotes)
}

// All returns a copy of the quotes in collection order.
func (c *Collection) All() []Quote {
	out := make([]Quote, len(c.quotes))
	copy(out, c.quotes)

	return out
}

// At returns the quote at index i.
func (c *Collection) At(i int) Quote {
	return c.quotes[i]
}

// Append adds quotes at the end, preserving their order.
func (c *Collection) Append(quotes ...Quote) {
	c.quotes = append(c.quotes, quotes...)
}

// Replace overwrites the quote at index i.
func (c *Collection) Replace(i int, q Quote) {
	c.quotes[i] = q
}

// IndexOfText returns the index of the first quote whose text matches q
// case-insensitively, or -1.
func (c *Collection) IndexOfText(q Quote) int {
	for i := range c.quotes {
		if c.quotes[i].SameText(q) {
			return i
		}
	}

	return -1
}

// Clone returns an independent copy of the collection.
func (c *Collection) Clone() *Collection {
	return NewCollection(c.quotes)
}

// Categories returns the distinct categories in first-seen order.
func (c *Collection) Categories() []string {
	seen := make(map[string]struct{}, len(c.quotes))
	out := make([]string, 0, len(c.quotes))

	for _, q := range c.quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}

		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}

	return out
}

// Filter returns the quotes in category. An empty category or CategoryAll
// selects every quote.
func (c *Collection) Filter(category string) []Quote {
	if category == "" || category == CategoryAll {
		return c.All()
	}

	var out []Quote

	for _, q := range c.quotes {
		if q.Category == category {
			out = append(out, q)
		}
	}

	return out
}

// Random picks a quote uniformly from the quotes in category.
func (c *Collection) Random(category string) (Quote, error) {
	candidates := c.Filter(category)
	if len(candidates) == 0 {
		return Quote{}, NewNotFoundError("quote", category)
	}

	//nolint:gosec // display randomness, not security sensitive
	return candidates[rand.IntN(len(candidates))], nil
}
