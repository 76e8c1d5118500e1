package service

import (
	"sort"

	"netledger/internal/domain"
)

// ActivityLog flattens every Record's history into one list, newest first.
// An empty filter or "all" returns everything; any other filter keeps only
// entries for that field.
func (s *Store) ActivityLog(fieldFilter string) []domain.ActivityEntry {
	return s.activity(fieldFilter, nil)
}

// ActivityLogFor is ActivityLog restricted to Records whose AID is in aids
func (s *Store) ActivityLogFor(fieldFilter string, aids []string) []domain.ActivityEntry {
	set := make(map[string]struct{}, len(aids))
	for _, aid := range aids {
		set[aid] = struct{}{}
	}
	return s.activity(fieldFilter, set)
}

func (s *Store) activity(fieldFilter string, aids map[string]struct{}) []domain.ActivityEntry {
	filtered := fieldFilter != "" && fieldFilter != domain.FieldAll

	entries := []domain.ActivityEntry{}
	for i := range s.records {
		rec := &s.records[i]
		if aids != nil {
			if _, ok := aids[rec.AID]; !ok {
				continue
			}
		}
		for _, e := range rec.History {
			if filtered && e.Field != fieldFilter {
				continue
			}
			entries = append(entries, domain.NewActivityEntry(rec, e))
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Date > entries[b].Date
	})
	return entries
}
