package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
)

const (
	dateLayout   = "2006-01-02"
	timeLayout   = "2006-01-02T15:04:05.000000000Z07:00" // fixed width, sorts lexically in UTC
	sqliteLayout = "2006-01-02 15:04:05"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a date string in "2006-01-02", RFC3339 or SQLite
// CURRENT_TIMESTAMP format.
func ParseTime(str string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{dateLayout, time.RFC3339Nano, sqliteLayout} {
		returnTime, err := time.Parse(layout, str)
		if err == nil {
			return returnTime.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %w", lastErr)
}

// storageError classifies a database failure as a storage fault.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, op, err)
}

// formatTime renders t in the stored timestamp layout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// isForeignKeyViolation reports whether err came from a failed FOREIGN KEY
// constraint. Only the owner reference is enforced this way.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
