package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Page size bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is returned when a cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// PageRequest is the cursor and limit of a paged listing.
type PageRequest struct {
	// Cursor is the opaque NextCursor of a previous page.
	Cursor string `form:"cursor" json:"cursor"`
	Limit  int    `form:"limit"  json:"limit"  validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PageRequest) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}

// Offset decodes the cursor. An empty cursor is the first page.
func (p *PageRequest) Offset() (int, error) {
	if p.Cursor == "" {
		return 0, nil
	}

	return DecodeCursor(p.Cursor)
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// Paginate slices all at offset. Offsets past the end give an empty page.
// Positions are stable while the collection only grows, which is the case
// between two syncs; a sync that replaces entries keeps their positions too.
func Paginate[T any](all []T, offset, limit int) *Page[T] {
	page := &Page[T]{Items: []T{}, Total: len(all)}

	if offset >= len(all) {
		return page
	}

	end := min(offset+limit, len(all))
	page.Items = append(page.Items, all[offset:end]...)

	if end < len(all) {
		page.HasMore = true
		page.NextCursor = EncodeCursor(end)
	}

	return page
}

type cursorData struct {
	Offset int `json:"o"`
}

// EncodeCursor encodes an offset as an opaque cursor.
func EncodeCursor(offset int) string {
	b, err := json.Marshal(cursorData{Offset: offset})
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(encoded string) (int, error) {
	b, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrInvalidCursor
	}

	var data cursorData
	if err := json.Unmarshal(b, &data); err != nil || data.Offset < 0 {
		return 0, ErrInvalidCursor
	}

	return data.Offset, nil
}
