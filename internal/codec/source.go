package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"netledger/internal/domain"
)

// SourceForPath picks an import source from the file extension. Anything
// other than .json, .yaml or .yml is read as CSV.
func SourceForPath(path string) RowSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFile{Path: path}
	case ".yaml", ".yml":
		return YAMLFile{Path: path}
	}
	return CSVFile{Path: path}
}

// Exporter writes both records and activity in one format
type Exporter interface {
	RecordExporter
	ActivityExporter
}

// ExporterFor returns the exporter registered under format
func ExporterFor(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "csv":
		return csvExporter{records: NewRecordCSV(), activity: NewActivityCSV()}, nil
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// csvExporter pairs the two CSV writers, which have different headers
type csvExporter struct {
	records  *RecordCSV
	activity *ActivityCSV
}

func (c csvExporter) Format() string { return c.records.Format() }

func (c csvExporter) ExportRecords(records []domain.Record, w io.Writer) error {
	return c.records.ExportRecords(records, w)
}

func (c csvExporter) ExportActivity(entries []domain.ActivityEntry, w io.Writer) error {
	return c.activity.ExportActivity(entries, w)
}
