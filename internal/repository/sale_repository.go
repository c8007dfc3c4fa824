package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
)

// SaleRepository provides append-only access to the transactions table,
// which holds one row per settlement.
type SaleRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSaleRepository creates a new SaleRepository with the provided database connection.
func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *SaleRepository) WithTx(tx *sql.Tx) *SaleRepository {
	return &SaleRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SaleRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertSale appends a sale record. Records are never updated or deleted.
func (r *SaleRepository) InsertSale(ctx context.Context, sale *model.SaleRecord) error {
	query := `
		INSERT INTO transactions (id, user_id, stock_id, shares, sell_price, sell_date, profit_loss)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		sale.ID,
		sale.OwnerID,
		sale.LotID,
		sale.Shares,
		sale.SellPrice,
		formatTime(sale.SellDate),
		sale.ProfitLoss,
	)
	if err != nil {
		return storageError("failed to insert sale", err)
	}

	return nil
}

// GetSales retrieves the owner's sale records matching filter.
// Records whose lot has since been closed are included.
func (r *SaleRepository) GetSales(ctx context.Context, ownerID string, filter model.SaleFilter) ([]model.SaleRecord, error) {
	query := `
		SELECT id, user_id, stock_id, shares, sell_price, sell_date, profit_loss
		FROM transactions
		WHERE user_id = ?
	`
	args := []any{ownerID}

	if filter.LotID != "" {
		query += ` AND stock_id = ?`
		args = append(args, filter.LotID)
	}
	if filter.StartDate != nil {
		query += ` AND sell_date >= ?`
		args = append(args, formatTime(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query += ` AND sell_date <= ?`
		args = append(args, formatTime(*filter.EndDate))
	}

	if filter.SortDir == "desc" {
		query += ` ORDER BY sell_date DESC, rowid DESC`
	} else {
		query += ` ORDER BY sell_date ASC, rowid ASC`
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("failed to query transactions table", err)
	}
	defer rows.Close()

	sales := []model.SaleRecord{}

	for rows.Next() {
		var s model.SaleRecord
		var sellDateStr string

		err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.LotID,
			&s.Shares,
			&s.SellPrice,
			&sellDateStr,
			&s.ProfitLoss,
		)
		if err != nil {
			return nil, storageError("failed to scan transactions table results", err)
		}

		s.SellDate, err = ParseTime(sellDateStr)
		if err != nil {
			return nil, storageError("corrupt sell_date", err)
		}

		sales = append(sales, s)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError("error iterating transactions table", err)
	}

	return sales, nil
}

// GetRealizedProfitLoss sums the profit/loss of every sale the owner has made.
func (r *SaleRepository) GetRealizedProfitLoss(ctx context.Context, ownerID string) (float64, error) {
	var total sql.NullFloat64
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT SUM(profit_loss) FROM transactions WHERE user_id = ?`, ownerID,
	).Scan(&total)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, storageError("failed to sum realized profit/loss", err)
	}

	return total.Float64, nil
}
