package domain

import "strings"

// Status values conventionally used for a Record. The data layer does not
// enforce them.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusInactive  = "inactive"
)

// UnsetAID is stored when a Record is added without an AID.
const UnsetAID = "N/A"

// Field names as they appear in storage and in update requests.
const (
	FieldAID         = "aid"
	FieldName        = "name"
	FieldBuilding    = "building"
	FieldIPLocation  = "ip_location"
	FieldPublicIP    = "public_ip"
	FieldPrivateIP   = "private_ip"
	FieldBandwidth   = "bandwidth"
	FieldStatus      = "status"
	FieldInstallDate = "install_date"
)

// Statuses lists the conventional lifecycle states in display order
var Statuses = []string{StatusActive, StatusSuspended, StatusInactive}

// Record represents one circuit in the inventory
type Record struct {
	AID         string       `json:"aid" yaml:"aid"`
	Name        string       `json:"name" yaml:"name"`
	Building    string       `json:"building" yaml:"building"`
	IPLocation  string       `json:"ip_location" yaml:"ip_location"`
	PublicIP    string       `json:"public_ip" yaml:"public_ip"`
	PrivateIP   string       `json:"private_ip" yaml:"private_ip"`
	Bandwidth   string       `json:"bandwidth" yaml:"bandwidth"`
	Status      string       `json:"status" yaml:"status"`
	InstallDate string       `json:"install_date" yaml:"install_date"`
	History     []AuditEntry `json:"history" yaml:"history"`
}

// GetField returns the value of a named attribute. The second result is
// false for names that are not record attributes.
func (r *Record) GetField(field string) (string, bool) {
	switch field {
	case FieldAID:
		return r.AID, true
	case FieldName:
		return r.Name, true
	case FieldBuilding:
		return r.Building, true
	case FieldIPLocation:
		return r.IPLocation, true
	case FieldPublicIP:
		return r.PublicIP, true
	case FieldPrivateIP:
		return r.PrivateIP, true
	case FieldBandwidth:
		return r.Bandwidth, true
	case FieldStatus:
		return r.Status, true
	case FieldInstallDate:
		return r.InstallDate, true
	}
	return "", false
}

// SetField sets a named attribute and reports whether the name was known
func (r *Record) SetField(field, value string) bool {
	switch field {
	case FieldAID:
		r.AID = value
	case FieldName:
		r.Name = value
	case FieldBuilding:
		r.Building = value
	case FieldIPLocation:
		r.IPLocation = value
	case FieldPublicIP:
		r.PublicIP = value
	case FieldPrivateIP:
		r.PrivateIP = value
	case FieldBandwidth:
		r.Bandwidth = value
	case FieldStatus:
		r.Status = value
	case FieldInstallDate:
		r.InstallDate = value
	default:
		return false
	}
	return true
}

// LastNote returns the note of the most recent history entry
func (r *Record) LastNote() string {
	if len(r.History) == 0 {
		return ""
	}
	return r.History[len(r.History)-1].Note
}

// Clone returns a deep copy of the record, history included
func (r *Record) Clone() Record {
	c := *r
	if r.History != nil {
		c.History = make([]AuditEntry, len(r.History))
		for i, e := range r.History {
			c.History[i] = e.Clone()
		}
	}
	return c
}

// IsStatus reports whether s is one of the conventional statuses
func IsStatus(s string) bool {
	for _, st := range Statuses {
		if strings.EqualFold(st, s) {
			return true
		}
	}
	return false
}
