package service

import (
	"context"

	"netledger/internal/codec"
	"netledger/internal/domain"
)

// ImportResult summarises a bulk import
type ImportResult struct {
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// Import reads every row from src and adds a Record for each row whose
// AID does not already resolve. A source that cannot be read leaves the
// collection untouched.
func (s *Store) Import(ctx context.Context, src codec.RowSource) ImportResult {
	rows, err := src.Rows()
	if err != nil {
		s.log.Error().Err(err).Msg("Import source unavailable")
		return ImportResult{Error: err.Error()}
	}
	return s.ImportRows(ctx, rows)
}

// ImportRows imports already parsed rows
func (s *Store) ImportRows(ctx context.Context, rows []codec.Row) ImportResult {
	var result ImportResult
	date := s.timestamp()

	for _, row := range rows {
		aid := row.Get(codec.HeaderAID...)
		if aid == "" {
			continue
		}
		if s.find(aid) >= 0 {
			result.Skipped++
			continue
		}

		s.records = append(s.records, recordFromRow(aid, row, date))
		result.Added++
	}

	if result.Added > 0 {
		if err := s.Save(ctx); err != nil {
			s.log.Error().Err(err).Msg("Failed to save imported records")
			result.Error = err.Error()
			return result
		}
		s.eventBus.Publish(Event{Type: EventRecordsImported, Payload: result})
	}

	s.log.Info().
		Int("added", result.Added).
		Int("skipped", result.Skipped).
		Msg("Import finished")

	return result
}

func recordFromRow(aid string, row codec.Row, date string) domain.Record {
	status := row.Get(codec.HeaderStatus...)
	if status == "" {
		status = domain.StatusActive
	}

	return domain.Record{
		AID:         aid,
		Name:        row.Get(codec.HeaderName...),
		Building:    row.Get(codec.HeaderBuilding...),
		IPLocation:  row.Get(codec.HeaderIPLocation...),
		PublicIP:    row.Get(codec.HeaderPublicIP...),
		PrivateIP:   row.Get(codec.HeaderPrivateIP...),
		Bandwidth:   row.Get(codec.HeaderBandwidth...),
		Status:      status,
		InstallDate: row.Get(codec.HeaderInstallDate...),
		History: []domain.AuditEntry{
			domain.NewRecordEvent(date, domain.ActionImported, domain.NoteImported),
		},
	}
}
