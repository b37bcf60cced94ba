// Package transfer encodes and decodes the quote collection as a JSON array
// of {text, category} objects, and moves it in and out of files.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

// Filename is the default export file name.
const Filename = "quotes.json"

// MaxPayload bounds decoded import documents.
const MaxPayload = 10 << 20

// record is the wire shape. Pointers tell absent or null fields from empty ones.
type record struct {
	Text     *string `json:"text"     validate:"required"`
	Category *string `json:"category" validate:"required"`
}

// Codec encodes exports and validates imports.
type Codec struct {
	validate *validator.Validate
}

// NewCodec creates a Codec.
func NewCodec() *Codec {
	return &Codec{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Encode writes quotes as a JSON array indented with two spaces.
func (c *Codec) Encode(w io.Writer, quotes []domain.Quote) error {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	out, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding quotes: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	return nil
}

// Decode reads an import payload. Malformed JSON, a non-array document or
// any element without text or category rejects the whole payload with a
// *domain.ImportError.
func (c *Codec) Decode(r io.Reader) ([]domain.ImportRecord, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}

	if len(data) > MaxPayload {
		return nil, domain.NewImportError(-1, "", domain.ImportReasonTooLarge)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, domain.NewImportError(-1, "", domain.ImportReasonNotArray)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewImportError(-1, "", domain.ImportReasonMalformed)
	}

	out := make([]domain.ImportRecord, 0, len(raw))

	for i, elem := range raw {
		var rec record
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, domain.NewImportError(i, "", "is not a {text, category} object")
		}

		if err := c.validate.Struct(rec); err != nil {
			return nil, c.importError(i, err)
		}

		out = append(out, domain.ImportRecord{Text: rec.Text, Category: rec.Category})
	}

	return out, nil
}

func (c *Codec) importError(index int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewImportError(index, jsonField(verrs[0].Field()), "is required")
	}

	return domain.NewImportError(index, "", err.Error())
}

func jsonField(name string) string {
	switch name {
	case "Text":
		return "text"
	case "Category":
		return "category"
	default:
		return name
	}
}

// Files reads and writes transfer documents on a billy filesystem.
type Files struct {
	fs    billy.Filesystem
	codec *Codec
}

// NewFiles creates a Files rooted at fs.
func NewFiles(fs billy.Filesystem, codec *Codec) *Files {
	return &Files{fs: fs, codec: codec}
}

// Write exports quotes to path, replacing any existing file.
func (f *Files) Write(path string, quotes []domain.Quote) error {
	var buf bytes.Buffer
	if err := f.codec.Encode(&buf, quotes); err != nil {
		return err
	}

	if err := util.WriteFile(f.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// Read decodes the import payload stored at path.
func (f *Files) Read(path string) ([]domain.ImportRecord, error) {
	file, err := f.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewNotFoundError("file", path)
		}

		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return f.codec.Decode(file)
}
