package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netledger/internal/domain"
	"netledger/internal/repository/jsonfile"
)

// testClock is a settable clock for history timestamps
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func (c *testClock) Stamp() string { return c.t.Format(domain.TimestampLayout) }

// memRepo is an in-memory repository that can be told to fail saves
type memRepo struct {
	records  []domain.Record
	settings domain.Settings
	loadErr  error
	saveErr  error
	saves    int
}

func (m *memRepo) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Record, len(m.records))
	for i := range m.records {
		out[i] = m.records[i].Clone()
	}
	return out, nil
}

func (m *memRepo) SaveRecords(ctx context.Context, records []domain.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = make([]domain.Record, len(records))
	for i := range records {
		m.records[i] = records[i].Clone()
	}
	return nil
}

func (m *memRepo) LoadSettings(ctx context.Context) (domain.Settings, error) {
	return m.settings.Clone(), nil
}

func (m *memRepo) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = settings.Clone()
	return nil
}

func (m *memRepo) Close() error { return nil }

var errDiskFull = errors.New("disk full")

func newMemStore(t *testing.T, repo *memRepo) (*Store, *testClock) {
	t.Helper()
	clock := newTestClock()
	s, err := NewStore(context.Background(), repo, WithClock(clock.Now))
	require.NoError(t, err)
	return s, clock
}

func newFileStore(t *testing.T) (*Store, *jsonfile.Repository, *testClock) {
	t.Helper()
	dir := t.TempDir()
	repo := jsonfile.New(filepath.Join(dir, "network_data.json"), filepath.Join(dir, "config.json"))
	clock := newTestClock()
	s, err := NewStore(context.Background(), repo, WithClock(clock.Now))
	require.NoError(t, err)
	return s, repo, clock
}

func mustAdd(t *testing.T, s *Store, rec domain.Record) string {
	t.Helper()
	aid, err := s.AddEntry(context.Background(), rec)
	require.NoError(t, err)
	return aid
}
