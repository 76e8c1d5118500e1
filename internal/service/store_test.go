package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netledger/internal/domain"
	"netledger/internal/repository/jsonfile"
)

func TestNewStoreEmpty(t *testing.T) {
	s, _, _ := newFileStore(t)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.GetAll())
	assert.Empty(t, s.ActivityLog(""))
	assert.Equal(t, "", s.RecipientID())
}

func TestNewStoreCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewStore(context.Background(), jsonfile.New(path, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestNewStoreLoadError(t *testing.T) {
	_, err := NewStore(context.Background(), &memRepo{loadErr: errDiskFull})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestAddEntry(t *testing.T) {
	s, repo, clock := newFileStore(t)

	aid := mustAdd(t, s, domain.Record{AID: "NAA-1", Name: "Head Office", Status: domain.StatusActive})
	assert.Equal(t, "NAA-1", aid)

	rec, ok := s.Resolve("NAA-1")
	require.True(t, ok)
	require.Len(t, rec.History, 1)
	assert.Equal(t, clock.Stamp(), rec.History[0].Date)
	assert.Equal(t, domain.ActionCreated, rec.History[0].Action)
	assert.Equal(t, domain.FieldAll, rec.History[0].Field)
	assert.Equal(t, domain.NoteInitialCreation, rec.History[0].Note)
	assert.Nil(t, rec.History[0].OldValue)
	assert.Nil(t, rec.History[0].NewValue)

	t.Run("persisted", func(t *testing.T) {
		stored, err := repo.LoadRecords(context.Background())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Head Office", stored[0].Name)
	})

	t.Run("empty AID becomes N/A", func(t *testing.T) {
		aid := mustAdd(t, s, domain.Record{Name: "Warehouse"})
		assert.Equal(t, domain.UnsetAID, aid)
		rec, ok := s.Resolve("warehouse")
		require.True(t, ok)
		assert.Equal(t, domain.UnsetAID, rec.AID)
	})

	t.Run("supplied history is replaced", func(t *testing.T) {
		mustAdd(t, s, domain.Record{
			AID:     "NAA-3",
			History: []domain.AuditEntry{domain.NewFieldChange("x", "name", "a", "b", "")},
		})
		rec, _ := s.Resolve("NAA-3")
		require.Len(t, rec.History, 1)
		assert.Equal(t, domain.ActionCreated, rec.History[0].Action)
	})

	t.Run("duplicates are accepted", func(t *testing.T) {
		before := s.Len()
		mustAdd(t, s, domain.Record{AID: "NAA-1", Name: "Second"})
		assert.Equal(t, before+1, s.Len())
		rec, _ := s.Resolve("NAA-1")
		assert.Equal(t, "Head Office", rec.Name)
	})
}

func TestAddEntrySaveFailure(t *testing.T) {
	repo := &memRepo{}
	s, _ := newMemStore(t, repo)
	repo.saveErr = errDiskFull

	_, err := s.AddEntry(context.Background(), domain.Record{AID: "NAA-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "failed to save records")
}

func TestResolve(t *testing.T) {
	s, _, _ := newFileStore(t)
	mustAdd(t, s, domain.Record{AID: "NAA-17797", Name: "Head Office"})
	mustAdd(t, s, domain.Record{AID: "Head Office", Name: "Shadow"})
	mustAdd(t, s, domain.Record{AID: "NAA-2", Name: "naa-17797"})

	tests := []struct {
		name       string
		identifier string
		wantFound  bool
		wantName   string
	}{
		{"exact AID", "NAA-17797", true, "Head Office"},
		{"AID ignores case", "naa-17797", true, "Head Office"},
		{"name ignores case", "HEAD OFFICE", true, "Head Office"},
		{"first in collection order wins", "head office", true, "Head Office"},
		{"name of later record", "shadow", true, "Shadow"},
		{"no partial match", "NAA-177", false, ""},
		{"unknown", "nothing", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := s.Resolve(tt.identifier)
			assert.Equal(t, tt.wantFound, ok)
			assert.Equal(t, tt.wantName, rec.Name)
		})
	}
}

func TestResolveFoldsUnicode(t *testing.T) {
	s, _ := newMemStore(t, &memRepo{})
	mustAdd(t, s, domain.Record{AID: "NAA-9", Name: "Straße 12", Building: "Σχολή"})

	for _, id := range []string{"STRASSE 12", "strasse 12", "STRAßE 12"} {
		rec, ok := s.Resolve(id)
		require.True(t, ok, id)
		assert.Equal(t, "NAA-9", rec.AID)
	}

	assert.Len(t, s.Search("strasse"), 1)
	assert.Len(t, s.Search("ΣΧΟΛΉ"), 1)
}

func TestResolveReturnsCopy(t *testing.T) {
	s, _, _ := newFileStore(t)
	mustAdd(t, s, domain.Record{AID: "NAA-1", Name: "Head Office"})

	rec, _ := s.Resolve("NAA-1")
	rec.Name = "Changed"
	rec.History[0].Note = "tampered"

	again, _ := s.Resolve("NAA-1")
	assert.Equal(t, "Head Office", again.Name)
	assert.Equal(t, domain.NoteInitialCreation, again.History[0].Note)
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newFileStore(t)
	mustAdd(t, s, domain.Record{AID: "NAA-1", Name: "Head Office"})
	mustAdd(t, s, domain.Record{AID: "NAA-2", Name: "Warehouse"})

	found, err := s.DeleteEntry(ctx, "warehouse")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Resolve("NAA-2")
	assert.False(t, ok)

	stored, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "NAA-1", stored[0].AID)

	found, err = s.DeleteEntry(ctx, "NAA-2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearch(t *testing.T) {
	s, _, _ := newFileStore(t)
	mustAdd(t, s, domain.Record{AID: "NAA-1", Name: "Head Office", Building: "Tower A", PublicIP: "203.0.113.10"})
	mustAdd(t, s, domain.Record{AID: "NAA-2", Name: "Warehouse", Building: "Depot", PublicIP: "198.51.100.7"})
	mustAdd(t, s, domain.Record{AID: "OFFICE-9", Name: "Lab", Building: "Tower B"})

	names := func(records []domain.Record) []string {
		out := []string{}
		for _, r := range records {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Head Office"}, names(s.Search("office")))
	assert.Equal(t, []string{"Head Office", "Lab"}, names(s.Search("tower")))
	assert.Equal(t, []string{"Warehouse"}, names(s.Search("198.51")))
	assert.Empty(t, s.Search("NAA"), "AID is not searched")
	assert.Len(t, s.Search(""), 3)
}

func TestListBuildings(t *testing.T) {
	s, _, _ := newFileStore(t)
	mustAdd(t, s, domain.Record{AID: "1", Building: "Tower B"})
	mustAdd(t, s, domain.Record{AID: "2", Building: "Depot"})
	mustAdd(t, s, domain.Record{AID: "3", Building: "Tower B"})
	mustAdd(t, s, domain.Record{AID: "4"})

	assert.Equal(t, []string{"Depot", "Tower B"}, s.ListBuildings())
	assert.Len(t, s.InBuilding("Tower B"), 2)
	assert.Empty(t, s.InBuilding("Nowhere"))
}

func TestRecipientID(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newFileStore(t)

	require.NoError(t, s.SetRecipientID(ctx, "-100123"))
	assert.Equal(t, "-100123", s.RecipientID())

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "-100123", settings[domain.SettingTelegramChatID])

	reopened, err := NewStore(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, "-100123", reopened.RecipientID())
}

func TestSetSettingFailureKeepsOldValue(t *testing.T) {
	repo := &memRepo{settings: domain.Settings{domain.SettingTelegramChatID: "old"}}
	s, _ := newMemStore(t, repo)
	repo.saveErr = errDiskFull

	err := s.SetRecipientID(context.Background(), "new")
	require.Error(t, err)
	assert.Equal(t, "old", s.RecipientID())
}

func TestEventsPublished(t *testing.T) {
	ctx := context.Background()
	bus := NewEventBus()
	ch := make(chan Event, 10)
	bus.Subscribe(ch)

	s, err := NewStore(ctx, &memRepo{}, WithEventBus(bus))
	require.NoError(t, err)

	mustAdd(t, s, domain.Record{AID: "NAA-1", Name: "Head Office", Status: "active"})
	_, err = s.ApplyUpdate(ctx, "NAA-1", map[string]string{"status": "inactive"}, "")
	require.NoError(t, err)
	_, err = s.DeleteEntry(ctx, "NAA-1")
	require.NoError(t, err)
	require.NoError(t, s.SetRecipientID(ctx, "-100123"))

	var got []Event
	timeout := time.After(time.Second)
	for len(got) < 4 {
		select {
		case e := <-ch:
			got = append(got, e)
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}

	assert.Equal(t, Event{Type: EventRecordCreated, Payload: RecordEvent{AID: "NAA-1", Name: "Head Office"}}, got[0])
	assert.Equal(t, Event{Type: EventRecordUpdated, Payload: RecordEvent{
		AID:     "NAA-1",
		Name:    "Head Office",
		Changes: []FieldChange{{Field: "status", OldValue: "active", NewValue: "inactive"}},
	}}, got[1])
	assert.Equal(t, Event{Type: EventRecordDeleted, Payload: RecordEvent{AID: "NAA-1", Name: "Head Office"}}, got[2])
	assert.Equal(t, Event{Type: EventSettingsUpdated, Payload: SettingsEvent{Key: domain.SettingTelegramChatID}}, got[3])
}
