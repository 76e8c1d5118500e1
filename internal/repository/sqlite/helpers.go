package sqlite

import (
	"database/sql"
	"encoding/json"

	"netledger/internal/domain"
)

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalToNull marshals v to a nullable JSON string.
// Returns empty NullString for nil or empty slices.
func marshalToNull(v interface{}) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}

	if h, ok := v.([]domain.AuditEntry); ok && len(h) == 0 {
		return sql.NullString{}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Record Row Scanner
// ============================================================================
//
// CRITICAL: Column order must match between:
// - recordColumns constant
// - scanArgs() return slice
// - recordInsertArgs() return slice

// recordRow holds all columns from a record query for scanning
type recordRow struct {
	Position    int64
	AID         string
	Name        string
	Building    string
	IPLocation  string
	PublicIP    string
	PrivateIP   string
	Bandwidth   string
	Status      string
	InstallDate string
	HistoryJSON sql.NullString
}

// recordColumns is the column list for record queries
const recordColumns = `position, aid, name, building, ip_location, public_ip,
	private_ip, bandwidth, status, install_date, history`

// scanArgs returns pointers to all fields for sql.Scan()
func (r *recordRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Position,    // 1
		&r.AID,         // 2
		&r.Name,        // 3
		&r.Building,    // 4
		&r.IPLocation,  // 5
		&r.PublicIP,    // 6
		&r.PrivateIP,   // 7
		&r.Bandwidth,   // 8
		&r.Status,      // 9
		&r.InstallDate, // 10
		&r.HistoryJSON, // 11
	}
}

// toDomain converts the scanned row to a domain.Record
func (r *recordRow) toDomain() (domain.Record, error) {
	rec := domain.Record{
		AID:         r.AID,
		Name:        r.Name,
		Building:    r.Building,
		IPLocation:  r.IPLocation,
		PublicIP:    r.PublicIP,
		PrivateIP:   r.PrivateIP,
		Bandwidth:   r.Bandwidth,
		Status:      r.Status,
		InstallDate: r.InstallDate,
	}

	if err := unmarshalJSONField(r.HistoryJSON, &rec.History); err != nil {
		return domain.Record{}, err
	}

	return rec, nil
}

// recordInsertArgs returns the values for one INSERT, position first
func recordInsertArgs(position int, rec *domain.Record) ([]interface{}, error) {
	history, err := marshalToNull(rec.History)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		position,
		rec.AID,
		rec.Name,
		rec.Building,
		rec.IPLocation,
		rec.PublicIP,
		rec.PrivateIP,
		rec.Bandwidth,
		rec.Status,
		rec.InstallDate,
		history,
	}, nil
}
