package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"netledger/internal/domain"
)

// Import headers. Each field accepts its display header (as written by
// RecordCSV) and its storage key.
var (
	HeaderAID         = []string{"AID", domain.FieldAID}
	HeaderName        = []string{"Name", domain.FieldName}
	HeaderBuilding    = []string{"Building", domain.FieldBuilding}
	HeaderIPLocation  = []string{"IP Location", domain.FieldIPLocation}
	HeaderPublicIP    = []string{"Public IP", domain.FieldPublicIP}
	HeaderPrivateIP   = []string{"Private IP", domain.FieldPrivateIP}
	HeaderBandwidth   = []string{"Bandwidth", domain.FieldBandwidth}
	HeaderStatus      = []string{"Status", domain.FieldStatus}
	HeaderInstallDate = []string{"Install Date", domain.FieldInstallDate}
)

// RecordCSVHeader is the header row written by RecordCSV
var RecordCSVHeader = []string{
	"AID", "Name", "Building", "IP Location", "Public IP",
	"Private IP", "Bandwidth", "Status", "Install Date", "Last Note",
}

// ActivityCSVHeader is the header row written by ActivityCSV
var ActivityCSVHeader = []string{
	"Date", "Network Name", "AID", "Field", "Old Value", "New Value", "Note",
}

const utf8BOM = "\ufeff"

// CSVFile reads rows from a CSV file with a header row
type CSVFile struct {
	Path string
}

// Rows opens and parses the whole file
func (c CSVFile) Rows() ([]Row, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	return rows, nil
}

// CSVReader adapts an io.Reader to RowSource
type CSVReader struct {
	R io.Reader
}

// Rows parses everything from the reader
func (c CSVReader) Rows() ([]Row, error) {
	return ReadCSV(c.R)
}

// ReadCSV parses CSV data with a header row into Rows. Rows may be shorter
// or longer than the header; cells without a header are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rows := []Row{}
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		row := make(Row, len(header))
		for i, cell := range cells {
			if i >= len(header) {
				break
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// RecordCSV writes records in the import-compatible CSV layout
type RecordCSV struct{}

// NewRecordCSV creates a new record CSV exporter
func NewRecordCSV() *RecordCSV {
	return &RecordCSV{}
}

// Format returns the codec format identifier
func (c *RecordCSV) Format() string {
	return "csv"
}

// ExportRecords writes one line per record plus the header
func (c *RecordCSV) ExportRecords(records []domain.Record, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(RecordCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range records {
		rec := &records[i]
		if err := writer.Write([]string{
			rec.AID,
			rec.Name,
			rec.Building,
			rec.IPLocation,
			rec.PublicIP,
			rec.PrivateIP,
			rec.Bandwidth,
			rec.Status,
			rec.InstallDate,
			rec.LastNote(),
		}); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.AID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ActivityCSV writes activity log entries as CSV
type ActivityCSV struct{}

// NewActivityCSV creates a new activity CSV exporter
func NewActivityCSV() *ActivityCSV {
	return &ActivityCSV{}
}

// Format returns the codec format identifier
func (c *ActivityCSV) Format() string {
	return "csv"
}

// ExportActivity writes one line per entry plus the header
func (c *ActivityCSV) ExportActivity(entries []domain.ActivityEntry, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ActivityCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		if err := writer.Write([]string{
			e.Date,
			e.NetworkName,
			e.NetworkAID,
			e.Field,
			e.Old(),
			e.New(),
			e.Note,
		}); err != nil {
			return fmt.Errorf("failed to write activity entry: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
