package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

func TestCodec_Encode(t *testing.T) {
	var buf bytes.Buffer

	err := NewCodec().Encode(&buf, []domain.Quote{{Text: "A", Category: "X"}})
	require.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"text\": \"A\",\n    \"category\": \"X\"\n  }\n]", buf.String())

	buf.Reset()
	require.NoError(t, NewCodec().Encode(&buf, nil))
	assert.Equal(t, "[]", buf.String())
}

func TestCodec_Decode(t *testing.T) {
	records, err := NewCodec().Decode(strings.NewReader(`[{"text":"Q1","category":"C1"},{"text":"Q2","category":"C2","extra":1}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	quotes, err := domain.ImportQuotes(records)
	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{{Text: "Q1", Category: "C1"}, {Text: "Q2", Category: "C2"}}, quotes)
}

func TestCodec_DecodeRejects(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantIndex int
		wantField string
	}{
		{name: "missing category", payload: `[{"text":"Q"}]`, wantIndex: 0, wantField: "category"},
		{name: "null text", payload: `[{"text":"ok","category":"c"},{"text":null,"category":"C"}]`, wantIndex: 1, wantField: "text"},
		{name: "object not array", payload: `{"text":"Q","category":"C"}`, wantIndex: -1},
		{name: "malformed", payload: `[{"text":"Q",`, wantIndex: -1},
		{name: "empty body", payload: ``, wantIndex: -1},
		{name: "element not object", payload: `["just a string"]`, wantIndex: 0},
		{name: "wrong field type", payload: `[{"text":1,"category":"C"}]`, wantIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := NewCodec().Decode(strings.NewReader(tt.payload))

			assert.Nil(t, records)
			require.ErrorIs(t, err, domain.ErrValidation)

			var importErr *domain.ImportError
			require.True(t, errors.As(err, &importErr))
			assert.Equal(t, tt.wantIndex, importErr.Index)
			assert.Equal(t, tt.wantField, importErr.Field)
		})
	}
}

func TestFiles_RoundTrip(t *testing.T) {
	fs := memfs.New()
	files := NewFiles(fs, NewCodec())

	quotes := []domain.Quote{{Text: "Be yourself; everyone else is already taken.", Category: "Life"}}
	require.NoError(t, files.Write("out/"+Filename, quotes))

	raw, err := util.ReadFile(fs, "out/"+Filename)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "  \"text\"")

	records, err := files.Read("out/" + Filename)
	require.NoError(t, err)

	got, err := domain.ImportQuotes(records)
	require.NoError(t, err)
	assert.Equal(t, quotes, got)
}

func TestFiles_ReadMissing(t *testing.T) {
	_, err := NewFiles(memfs.New(), NewCodec()).Read("nope.json")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
