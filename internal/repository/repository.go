package repository

import (
	"context"
	"errors"

	"netledger/internal/domain"
)

// ErrCorrupt is wrapped by load errors caused by undecodable stored data
var ErrCorrupt = errors.New("stored data is corrupt")

// Repository defines the interface for inventory data access
type Repository interface {
	// Records are loaded and saved as a whole, in collection order
	LoadRecords(ctx context.Context) ([]domain.Record, error)
	SaveRecords(ctx context.Context, records []domain.Record) error

	// Settings persistence
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error

	// Close releases resources
	Close() error
}
