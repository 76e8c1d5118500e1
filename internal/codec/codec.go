// Package codec converts inventory data to and from external file formats.
//
// Import sources produce Rows, header-keyed maps of cell values, which the
// service layer turns into Records. Exporters write read-only snapshots of
// Records or of the activity log. The two exporter kinds are separate
// interfaces so callers never have to guess which shape they hold.
package codec

import (
	"io"

	"netledger/internal/domain"
)

// Row is one tabular row keyed by its header cell
type Row map[string]string

// Get returns the first non-empty value among the given header spellings.
// Header names are matched exactly, including case.
func (r Row) Get(headers ...string) string {
	for _, h := range headers {
		if v := r[h]; v != "" {
			return v
		}
	}
	return ""
}

// RowSource yields all rows of an import source at once. An error means
// nothing could be read and no row should be applied.
type RowSource interface {
	Rows() ([]Row, error)
}

// RecordExporter writes a snapshot of records
type RecordExporter interface {
	ExportRecords(records []domain.Record, w io.Writer) error
	Format() string
}

// ActivityExporter writes activity log entries
type ActivityExporter interface {
	ExportActivity(entries []domain.ActivityEntry, w io.Writer) error
	Format() string
}

// Rows is an in-memory RowSource
type Rows []Row

// Rows returns the rows themselves
func (r Rows) Rows() ([]Row, error) {
	return r, nil
}
