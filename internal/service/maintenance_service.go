package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
)

// MaintenanceService runs periodic SQLite housekeeping: an integrity check,
// PRAGMA optimize and a WAL checkpoint.
type MaintenanceService struct {
	db      *sql.DB
	timeout time.Duration
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(db *sql.DB) *MaintenanceService {
	return &MaintenanceService{
		db:      db,
		timeout: time.Minute,
	}
}

// Run performs one maintenance pass. A failed integrity check is reported
// as apperrors.ErrStorage.
func (s *MaintenanceService) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var result string
	if err := s.db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&result); err != nil {
		return fmt.Errorf("%w: quick_check failed: %w", apperrors.ErrStorage, err)
	}
	if result != "ok" {
		return fmt.Errorf("%w: quick_check reported %q", apperrors.ErrStorage, result)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("%w: optimize failed: %w", apperrors.ErrStorage, err)
	}

	// No-op unless the database runs in WAL mode.
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("%w: wal checkpoint failed: %w", apperrors.ErrStorage, err)
	}

	return nil
}

// Schedule starts a cron scheduler running Run on spec (standard cron
// syntax or descriptors such as "@daily"). The caller stops it with Stop.
func (s *MaintenanceService) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		start := time.Now()
		if err := s.Run(context.Background()); err != nil {
			log.Printf("maintenance: %v", err)
			return
		}
		log.Printf("maintenance: completed in %s", time.Since(start))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
