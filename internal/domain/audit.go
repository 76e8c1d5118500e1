package domain

// TimestampLayout is the second-precision layout used for AuditEntry.Date.
// Dates in this layout sort lexicographically in chronological order.
const TimestampLayout = "2006-01-02 15:04:05"

// FieldAll marks whole-record events in AuditEntry.Field
const FieldAll = "all"

// Audit actions
const (
	ActionCreated  = "Created"
	ActionImported = "Imported"
	// ActionChangedPrefix is followed by the field name, e.g. "Changed status"
	ActionChangedPrefix = "Changed "
)

// Notes attached to whole-record events
const (
	NoteInitialCreation = "Initial Creation"
	NoteImported        = "Imported from CSV"
)

// MutableFields defines which attributes an update may change
var MutableFields = []string{
	FieldAID,
	FieldName,
	FieldBuilding,
	FieldIPLocation,
	FieldPublicIP,
	FieldPrivateIP,
	FieldBandwidth,
	FieldStatus,
	FieldInstallDate,
}

// LoggedFields are the fields the activity log is usually filtered by
var LoggedFields = []string{
	FieldAll,
	FieldBandwidth,
	FieldPrivateIP,
	FieldPublicIP,
	FieldIPLocation,
	FieldStatus,
}

// IsMutable returns true if the field can be changed by an update
func IsMutable(field string) bool {
	for _, f := range MutableFields {
		if f == field {
			return true
		}
	}
	return false
}

// AuditEntry is one recorded change against a Record
type AuditEntry struct {
	Date     string  `json:"date" yaml:"date"`
	Action   string  `json:"action" yaml:"action"`
	Field    string  `json:"field" yaml:"field"`
	OldValue *string `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	NewValue *string `json:"new_value,omitempty" yaml:"new_value,omitempty"`
	Note     string  `json:"note" yaml:"note"`
}

// NewRecordEvent creates a whole-record entry such as Created or Imported
func NewRecordEvent(date, action, note string) AuditEntry {
	return AuditEntry{
		Date:   date,
		Action: action,
		Field:  FieldAll,
		Note:   note,
	}
}

// NewFieldChange creates the entry for a single field change
func NewFieldChange(date, field, oldValue, newValue, note string) AuditEntry {
	return AuditEntry{
		Date:     date,
		Action:   ActionChangedPrefix + field,
		Field:    field,
		OldValue: &oldValue,
		NewValue: &newValue,
		Note:     note,
	}
}

// IsRecordEvent reports whether the entry describes the whole record
func (e AuditEntry) IsRecordEvent() bool {
	return e.Field == FieldAll
}

// Old returns the previous value, or "" for whole-record events
func (e AuditEntry) Old() string {
	if e.OldValue == nil {
		return ""
	}
	return *e.OldValue
}

// New returns the new value, or "" for whole-record events
func (e AuditEntry) New() string {
	if e.NewValue == nil {
		return ""
	}
	return *e.NewValue
}

// Clone copies the entry so the value pointers are not shared
func (e AuditEntry) Clone() AuditEntry {
	c := e
	if e.OldValue != nil {
		v := *e.OldValue
		c.OldValue = &v
	}
	if e.NewValue != nil {
		v := *e.NewValue
		c.NewValue = &v
	}
	return c
}
