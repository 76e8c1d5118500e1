package domain

// ActivityEntry is an AuditEntry tagged with the record it belongs to
type ActivityEntry struct {
	AuditEntry  `yaml:",inline"`
	NetworkName string `json:"network_name" yaml:"network_name"`
	NetworkAID  string `json:"network_aid" yaml:"network_aid"`
}

// NewActivityEntry copies e and tags it with the owner's name and AID
func NewActivityEntry(owner *Record, e AuditEntry) ActivityEntry {
	return ActivityEntry{
		AuditEntry:  e.Clone(),
		NetworkName: owner.Name,
		NetworkAID:  owner.AID,
	}
}
