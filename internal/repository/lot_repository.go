package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
)

// LotRepository provides data access methods for the stocks table.
// Every query is scoped by owner: a lot belonging to another owner is
// indistinguishable from a missing one.
type LotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewLotRepository creates a new LotRepository with the provided database connection.
func NewLotRepository(db *sql.DB) *LotRepository {
	return &LotRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *LotRepository) WithTx(tx *sql.Tx) *LotRepository {
	return &LotRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *LotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertLot persists a new lot. Lots are never merged, so buying the same
// symbol twice produces two rows.
func (r *LotRepository) InsertLot(ctx context.Context, lot *model.Lot) error {
	query := `
		INSERT INTO stocks (id, user_id, name, shares, purchase_price, purchase_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		lot.ID,
		lot.OwnerID,
		lot.Name,
		lot.Shares,
		lot.PurchasePrice,
		lot.PurchaseDate.Format(dateLayout),
		formatTime(lot.CreatedAt),
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown owner %s", apperrors.ErrValidation, lot.OwnerID)
	}
	if err != nil {
		return storageError("failed to insert lot", err)
	}

	return nil
}

// GetLots retrieves the owner's active lots in creation order.
// Returns an empty slice if the owner holds nothing.
func (r *LotRepository) GetLots(ctx context.Context, ownerID string) ([]model.Lot, error) {
	query := `
		SELECT id, user_id, name, shares, purchase_price, purchase_date, created_at
		FROM stocks
		WHERE user_id = ? AND shares > 0
		ORDER BY rowid ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storageError("failed to query stocks table", err)
	}
	defer rows.Close()

	lots := []model.Lot{}

	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("error iterating stocks table", err)
	}

	return lots, nil
}

// GetLot retrieves a single lot owned by ownerID.
// Returns apperrors.ErrLotNotFound if the lot is absent or owned by someone else.
func (r *LotRepository) GetLot(ctx context.Context, ownerID, lotID string) (model.Lot, error) {
	query := `
		SELECT id, user_id, name, shares, purchase_price, purchase_date, created_at
		FROM stocks
		WHERE id = ? AND user_id = ? AND shares > 0
	`

	lot, err := scanLot(r.getQuerier().QueryRowContext(ctx, query, lotID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lot{}, apperrors.ErrLotNotFound
	}
	if err != nil {
		return model.Lot{}, err
	}

	return lot, nil
}

// ReduceOrCloseLot decrements the lot's shares by delta in a single
// conditional update and deletes the row when nothing remains.
// Returns the shares left after the update.
//
// Fails with apperrors.ErrConflict if delta exceeds the current shares and
// apperrors.ErrLotNotFound if the lot does not exist for ownerID. Callers
// that need both steps to be atomic with other writes must use WithTx.
func (r *LotRepository) ReduceOrCloseLot(ctx context.Context, ownerID, lotID string, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("%w: shares to remove must be positive, got %d", apperrors.ErrValidation, delta)
	}

	q := r.getQuerier()

	var remaining int64
	err := q.QueryRowContext(ctx, `
		UPDATE stocks
		SET shares = shares - ?
		WHERE id = ? AND user_id = ? AND shares >= ?
		RETURNING shares
	`, delta, lotID, ownerID, delta).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetLot(ctx, ownerID, lotID); getErr != nil {
			return 0, getErr
		}
		return 0, fmt.Errorf("%w: lot %s holds fewer than %d shares", apperrors.ErrConflict, lotID, delta)
	}
	if err != nil {
		return 0, storageError("failed to update lot", err)
	}

	if remaining == 0 {
		if _, err := q.ExecContext(ctx, `DELETE FROM stocks WHERE id = ? AND user_id = ?`, lotID, ownerID); err != nil {
			return 0, storageError("failed to close lot", err)
		}
	}

	return remaining, nil
}

// CountLots returns the number of active lots the owner holds.
func (r *LotRepository) CountLots(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stocks WHERE user_id = ? AND shares > 0`, ownerID,
	).Scan(&count)
	if err != nil {
		return 0, storageError("failed to count lots", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLot(row rowScanner) (model.Lot, error) {
	var lot model.Lot
	var purchaseDateStr string
	var createdAtStr sql.NullString

	err := row.Scan(
		&lot.ID,
		&lot.OwnerID,
		&lot.Name,
		&lot.Shares,
		&lot.PurchasePrice,
		&purchaseDateStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lot{}, err
	}
	if err != nil {
		return model.Lot{}, storageError("failed to scan stocks table results", err)
	}

	lot.PurchaseDate, err = ParseTime(purchaseDateStr)
	if err != nil {
		return model.Lot{}, storageError("corrupt purchase_date", err)
	}

	if createdAtStr.Valid {
		lot.CreatedAt, err = ParseTime(createdAtStr.String)
		if err != nil {
			return model.Lot{}, storageError("corrupt created_at", err)
		}
	}

	return lot, nil
}
