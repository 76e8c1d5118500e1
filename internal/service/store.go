package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"netledger/internal/domain"
	"netledger/internal/logger"
	"netledger/internal/repository"
)

// Store owns the inventory collection and is the only authority for
// resolving identifiers to Records.
type Store struct {
	repo     repository.Repository
	eventBus *EventBus
	log      zerolog.Logger
	now      func() time.Time
	folder   *folder

	records  []domain.Record
	settings domain.Settings
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for diagnostics
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = logger.WithComponent(l, "store")
	}
}

// WithEventBus publishes mutations on bus
func WithEventBus(bus *EventBus) Option {
	return func(s *Store) {
		s.eventBus = bus
	}
}

// WithClock replaces time.Now for history timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store and loads the collection from repo
func NewStore(ctx context.Context, repo repository.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:     repo,
		log:      logger.NewTestLogger(),
		now:      time.Now,
		folder:   newFolder(),
		records:  []domain.Record{},
		settings: domain.Settings{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collection and settings with what the
// repository holds. Corrupt data is logged and treated as empty.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.repo.LoadRecords(ctx)
	switch {
	case errors.Is(err, repository.ErrCorrupt):
		s.log.Warn().Err(err).Msg("Stored records are unreadable, starting with an empty inventory")
		records = []domain.Record{}
	case err != nil:
		return fmt.Errorf("failed to load records: %w", err)
	}

	settings, err := s.repo.LoadSettings(ctx)
	switch {
	case errors.Is(err, repository.ErrCorrupt):
		s.log.Warn().Err(err).Msg("Stored settings are unreadable, using defaults")
		settings = domain.Settings{}
	case err != nil:
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if records == nil {
		records = []domain.Record{}
	}
	if settings == nil {
		settings = domain.Settings{}
	}

	s.records = records
	s.settings = settings
	s.log.Debug().Int("records", len(records)).Msg("Inventory loaded")
	return nil
}

// Save writes the whole collection back to the repository
func (s *Store) Save(ctx context.Context) error {
	if err := s.repo.SaveRecords(ctx, s.records); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}

// timestamp returns the current time in history format
func (s *Store) timestamp() string {
	return s.now().Format(domain.TimestampLayout)
}

// AddEntry appends rec as a new Record and returns its effective AID. An
// empty AID is replaced by domain.UnsetAID. Any history on rec is replaced
// by a single creation entry.
func (s *Store) AddEntry(ctx context.Context, rec domain.Record) (string, error) {
	if rec.AID == "" {
		rec.AID = domain.UnsetAID
	}
	rec.History = []domain.AuditEntry{
		domain.NewRecordEvent(s.timestamp(), domain.ActionCreated, domain.NoteInitialCreation),
	}

	s.records = append(s.records, rec)
	if err := s.Save(ctx); err != nil {
		return rec.AID, err
	}

	s.log.Info().Str("aid", rec.AID).Str("name", rec.Name).Msg("Record created")
	s.eventBus.Publish(Event{
		Type:    EventRecordCreated,
		Payload: RecordEvent{AID: rec.AID, Name: rec.Name},
	})

	return rec.AID, nil
}

// find returns the index of the first record whose AID or name matches
// identifier, or -1
func (s *Store) find(identifier string) int {
	for i := range s.records {
		if s.folder.equal(s.records[i].AID, identifier) || s.folder.equal(s.records[i].Name, identifier) {
			return i
		}
	}
	return -1
}

// Resolve returns a copy of the first Record whose AID or name equals
// identifier, ignoring case
func (s *Store) Resolve(identifier string) (domain.Record, bool) {
	i := s.find(identifier)
	if i < 0 {
		return domain.Record{}, false
	}
	return s.records[i].Clone(), true
}

// DeleteEntry removes the resolved Record and its history. It reports
// whether a Record was found.
func (s *Store) DeleteEntry(ctx context.Context, identifier string) (bool, error) {
	i := s.find(identifier)
	if i < 0 {
		return false, nil
	}

	removed := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)

	if err := s.Save(ctx); err != nil {
		return true, err
	}

	s.log.Info().Str("aid", removed.AID).Str("name", removed.Name).Msg("Record deleted")
	s.eventBus.Publish(Event{
		Type:    EventRecordDeleted,
		Payload: RecordEvent{AID: removed.AID, Name: removed.Name},
	})

	return true, nil
}

// Search returns copies of all Records whose name, public IP or building
// contains query, ignoring case, in collection order
func (s *Store) Search(query string) []domain.Record {
	q := s.folder.fold(query)

	results := []domain.Record{}
	for i := range s.records {
		rec := &s.records[i]
		if s.folder.contains(rec.Name, q) ||
			s.folder.contains(rec.PublicIP, q) ||
			s.folder.contains(rec.Building, q) {
			results = append(results, rec.Clone())
		}
	}
	return results
}

// ListBuildings returns the distinct non-empty buildings, sorted
func (s *Store) ListBuildings() []string {
	seen := make(map[string]struct{})
	buildings := []string{}
	for i := range s.records {
		b := s.records[i].Building
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		buildings = append(buildings, b)
	}
	sort.Strings(buildings)
	return buildings
}

// GetAll returns a copy of the whole collection
func (s *Store) GetAll() []domain.Record {
	all := make([]domain.Record, len(s.records))
	for i := range s.records {
		all[i] = s.records[i].Clone()
	}
	return all
}

// InBuilding returns copies of the Records located in building
func (s *Store) InBuilding(building string) []domain.Record {
	results := []domain.Record{}
	for i := range s.records {
		if s.records[i].Building == building {
			results = append(results, s.records[i].Clone())
		}
	}
	return results
}

// Setting returns a stored setting, or "" when unset
func (s *Store) Setting(key string) string {
	return s.settings.Get(key)
}

// SetSetting stores a setting and persists the settings object
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	next := s.settings.Clone()
	next[key] = value
	if err := s.repo.SaveSettings(ctx, next); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.settings = next

	s.eventBus.Publish(Event{
		Type:    EventSettingsUpdated,
		Payload: SettingsEvent{Key: key},
	})
	return nil
}

// RecipientID returns the remembered Telegram chat
func (s *Store) RecipientID() string {
	return s.Setting(domain.SettingTelegramChatID)
}

// SetRecipientID remembers the Telegram chat for later exports
func (s *Store) SetRecipientID(ctx context.Context, chatID string) error {
	return s.SetSetting(ctx, domain.SettingTelegramChatID, chatID)
}
