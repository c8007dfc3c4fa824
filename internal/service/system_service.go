package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/database"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	status, err := database.Status(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       status.Version,
		MigrationNeeded: status.PendingChanges,
	}, nil
}
