package service

import (
	"context"
	"sort"

	"netledger/internal/domain"
)

// FieldChange describes one attribute change an update would make
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// ApplyUpdate changes the named fields of the Record resolved by
// identifier. Each effective change appends a "Changed <field>" history
// entry carrying note. Unchanged and unknown fields are skipped. The
// collection is saved whenever the Record is found, even if nothing
// changed.
func (s *Store) ApplyUpdate(ctx context.Context, identifier string, changes map[string]string, note string) (bool, error) {
	i := s.find(identifier)
	if i < 0 {
		return false, nil
	}

	rec := &s.records[i]
	date := s.timestamp()

	applied := s.diff(rec, changes)
	for _, c := range applied {
		rec.SetField(c.Field, c.NewValue)
		rec.History = append(rec.History, domain.NewFieldChange(date, c.Field, c.OldValue, c.NewValue, note))
	}

	if err := s.Save(ctx); err != nil {
		return true, err
	}

	if len(applied) > 0 {
		s.log.Info().
			Str("aid", rec.AID).
			Int("changes", len(applied)).
			Msg("Record updated")
		s.eventBus.Publish(Event{
			Type: EventRecordUpdated,
			Payload: RecordEvent{AID: rec.AID, Name: rec.Name, Changes: applied},
		})
	}

	return true, nil
}

// Diff returns the changes ApplyUpdate would make without applying them.
// The second result is false when identifier resolves to nothing.
func (s *Store) Diff(identifier string, changes map[string]string) ([]FieldChange, bool) {
	i := s.find(identifier)
	if i < 0 {
		return nil, false
	}
	return s.diff(&s.records[i], changes), true
}

func (s *Store) diff(rec *domain.Record, changes map[string]string) []FieldChange {
	fields := make([]string, 0, len(changes))
	for f := range changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	result := []FieldChange{}
	for _, field := range fields {
		if !domain.IsMutable(field) {
			s.log.Warn().Str("field", field).Msg("Ignoring unknown field in update")
			continue
		}
		current, _ := rec.GetField(field)
		next := changes[field]
		if current == next {
			continue
		}
		result = append(result, FieldChange{Field: field, OldValue: current, NewValue: next})
	}
	return result
}
