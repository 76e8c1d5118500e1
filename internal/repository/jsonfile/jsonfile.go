// Package jsonfile stores records and settings as indented JSON files.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"netledger/internal/domain"
	"netledger/internal/repository"
)

// Default file names
const (
	DefaultRecordsFile  = "network_data.json"
	DefaultSettingsFile = "config.json"
)

// Repository implements repository.Repository on two JSON files
type Repository struct {
	recordsPath  string
	settingsPath string
}

var _ repository.Repository = (*Repository)(nil)

// New creates a repository backed by the given files. The files are not
// touched until the first load or save.
func New(recordsPath, settingsPath string) *Repository {
	if recordsPath == "" {
		recordsPath = DefaultRecordsFile
	}
	if settingsPath == "" {
		settingsPath = filepath.Join(filepath.Dir(recordsPath), DefaultSettingsFile)
	}
	return &Repository{recordsPath: recordsPath, settingsPath: settingsPath}
}

// RecordsPath returns the path of the records file
func (r *Repository) RecordsPath() string {
	return r.recordsPath
}

// LoadRecords reads the whole collection
func (r *Repository) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	found, err := readJSON(r.recordsPath, &records)
	if err != nil {
		return nil, err
	}
	if !found || records == nil {
		return []domain.Record{}, nil
	}
	return records, nil
}

// SaveRecords replaces the records file
func (r *Repository) SaveRecords(ctx context.Context, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	if err := writeJSON(r.recordsPath, records); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// LoadSettings reads the settings object
func (r *Repository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	settings := domain.Settings{}
	found, err := readJSON(r.settingsPath, &settings)
	if err != nil {
		return nil, err
	}
	if !found || settings == nil {
		return domain.Settings{}, nil
	}
	return settings, nil
}

// SaveSettings replaces the settings file
func (r *Repository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if settings == nil {
		settings = domain.Settings{}
	}
	if err := writeJSON(r.settingsPath, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Close is a no-op; files are opened per call
func (r *Repository) Close() error {
	return nil
}

// readJSON decodes path into v. It reports found=false when the file does
// not exist.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w: %v", path, repository.ErrCorrupt, err)
	}
	return true, nil
}

// writeJSON writes v to a temp file in the target directory and renames it
// over path so readers never see a partial file.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return os.Rename(tmpName, path)
}
