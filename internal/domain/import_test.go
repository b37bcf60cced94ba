package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestImportQuotes(t *testing.T) {
	tests := []struct {
		name      string
		records   []ImportRecord
		want      []Quote
		wantIndex int
		wantField string
	}{
		{
			name:    "valid payload",
			records: []ImportRecord{{Text: ptr("Q1"), Category: ptr("C1")}, {Text: ptr("Q2"), Category: ptr("C2")}},
			want:    []Quote{{Text: "Q1", Category: "C1"}, {Text: "Q2", Category: "C2"}},
		},
		{
			name:    "empty payload",
			records: []ImportRecord{},
			want:    []Quote{},
		},
		{
			name:      "missing category",
			records:   []ImportRecord{{Text: ptr("Q")}},
			wantIndex: 0,
			wantField: "category",
		},
		{
			name:      "missing text on second element",
			records:   []ImportRecord{{Text: ptr("Q"), Category: ptr("C")}, {Category: ptr("C")}},
			wantIndex: 1,
			wantField: "text",
		},
		{
			name:      "blank text",
			records:   []ImportRecord{{Text: ptr("   "), Category: ptr("C")}},
			wantIndex: 0,
			wantField: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportQuotes(tt.records)

			if tt.want != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				return
			}

			assert.Nil(t, got)
			require.ErrorIs(t, err, ErrValidation)

			var importErr *ImportError
			require.True(t, errors.As(err, &importErr))
			assert.Equal(t, tt.wantIndex, importErr.Index)
			assert.Equal(t, tt.wantField, importErr.Field)
		})
	}
}
