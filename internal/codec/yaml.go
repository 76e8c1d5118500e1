package codec

import (
	"fmt"
	"io"
	"os"

	"netledger/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export of records and activity
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument is the top-level structure of an export
type yamlDocument struct {
	Records  []domain.Record        `yaml:"records,omitempty"`
	Activity []domain.ActivityEntry `yaml:"activity,omitempty"`
}

// ExportRecords writes records under a "records" key
func (c *YAMLCodec) ExportRecords(records []domain.Record, w io.Writer) error {
	return c.encode(&yamlDocument{Records: records}, w)
}

// ExportActivity writes entries under an "activity" key
func (c *YAMLCodec) ExportActivity(entries []domain.ActivityEntry, w io.Writer) error {
	return c.encode(&yamlDocument{Activity: entries}, w)
}

func (c *YAMLCodec) encode(doc *yamlDocument, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finish YAML stream: %w", err)
	}

	return nil
}

// ParseRecords reads a document written by ExportRecords
func (c *YAMLCodec) ParseRecords(r io.Reader) ([]domain.Record, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc.Records, nil
}

// YAMLFile reads import rows from a document written by ExportRecords
type YAMLFile struct {
	Path string
}

// Rows parses the file and converts each record back to a row keyed by
// field name. History is not carried over.
func (f YAMLFile) Rows() ([]Row, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	records, err := NewYAMLCodec().ParseRecords(file)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for i := range records {
		row := make(Row, len(domain.MutableFields))
		for _, field := range domain.MutableFields {
			if v, _ := records[i].GetField(field); v != "" {
				row[field] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
