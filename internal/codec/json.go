package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"netledger/internal/domain"
)

// JSONCodec handles JSON export of records and activity
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ExportRecords writes records, history included
func (c *JSONCodec) ExportRecords(records []domain.Record, w io.Writer) error {
	if records == nil {
		records = []domain.Record{}
	}
	return c.encode(records, w)
}

// ExportActivity writes activity entries
func (c *JSONCodec) ExportActivity(entries []domain.ActivityEntry, w io.Writer) error {
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	return c.encode(entries, w)
}

func (c *JSONCodec) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Rows decodes a JSON array of objects into import rows. Numbers keep
// their literal text, so a numeric AID of 17797001 stays "17797001".
func (c *JSONCodec) Rows(r io.Reader) ([]Row, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		row := make(Row, len(obj))
		for k, v := range obj {
			switch val := v.(type) {
			case nil:
			case string:
				row[k] = val
			case json.Number:
				row[k] = val.String()
			case []any, map[string]any:
				// nested values such as history are not importable
			default:
				row[k] = fmt.Sprint(val)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// JSONFile reads import rows from a file holding a JSON array of objects
type JSONFile struct {
	Path string
}

// Rows opens and decodes the whole file
func (f JSONFile) Rows() ([]Row, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	return NewJSONCodec().Rows(file)
}
