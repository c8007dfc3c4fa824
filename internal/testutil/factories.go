package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
)

// UserBuilder provides a fluent interface for creating owners.
//
// Example usage:
//
//	owner := testutil.NewUser().Build(t, db)
//	lot := testutil.NewLot(owner.ID).WithShares(10).Build(t, db)
type UserBuilder struct {
	ID           string
	Username     string
	PasswordHash string
}

// User is the minimal owner row the ledger references.
type User struct {
	ID       string
	Username string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:           MakeID(),
		Username:     MakeUsername("user"),
		PasswordHash: "not-a-real-hash",
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.Username = name
	return b
}

// Build creates the user in the database.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) User {
	t.Helper()

	query := `
		INSERT INTO users (id, username, password_hash)
		VALUES (?, ?, ?)
	`

	if _, err := db.Exec(query, b.ID, b.Username, b.PasswordHash); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	return User{ID: b.ID, Username: b.Username}
}

// LotBuilder provides a fluent interface for creating lots.
type LotBuilder struct {
	ID            string
	OwnerID       string
	Name          string
	Shares        int64
	PurchasePrice float64
	PurchaseDate  time.Time
}

// NewLot creates a LotBuilder owned by ownerID with sensible defaults.
func NewLot(ownerID string) *LotBuilder {
	return &LotBuilder{
		ID:            MakeID(),
		OwnerID:       ownerID,
		Name:          "ACME",
		Shares:        10,
		PurchasePrice: 5.0,
		PurchaseDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *LotBuilder) WithID(id string) *LotBuilder {
	b.ID = id
	return b
}

// WithName sets the symbol.
func (b *LotBuilder) WithName(name string) *LotBuilder {
	b.Name = name
	return b
}

// WithShares sets the number of shares
func (b *LotBuilder) WithShares(shares int64) *LotBuilder {
	b.Shares = shares
	return b
}

// WithPurchasePrice sets the cost basis per share
func (b *LotBuilder) WithPurchasePrice(price float64) *LotBuilder {
	b.PurchasePrice = price
	return b
}

// WithPurchaseDate sets the acquisition date
func (b *LotBuilder) WithPurchaseDate(date time.Time) *LotBuilder {
	b.PurchaseDate = date
	return b
}

// Build creates the lot in the database
func (b *LotBuilder) Build(t *testing.T, db *sql.DB) model.Lot {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO stocks (id, user_id, name, shares, purchase_price, purchase_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.OwnerID, b.Name, b.Shares, b.PurchasePrice,
		b.PurchaseDate.Format("2006-01-02"), createdAt.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create lot: %v", err)
	}

	return model.Lot{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Name:          b.Name,
		Shares:        b.Shares,
		PurchasePrice: b.PurchasePrice,
		PurchaseDate:  b.PurchaseDate,
		CreatedAt:     createdAt,
	}
}

// SaleBuilder provides a fluent interface for creating sale records.
type SaleBuilder struct {
	ID         string
	OwnerID    string
	LotID      string
	Shares     int64
	SellPrice  float64
	SellDate   time.Time
	ProfitLoss float64
}

// NewSale creates a SaleBuilder for a sale of lotID with sensible defaults.
// The lot does not need to exist.
func NewSale(ownerID, lotID string) *SaleBuilder {
	return &SaleBuilder{
		ID:         MakeID(),
		OwnerID:    ownerID,
		LotID:      lotID,
		Shares:     1,
		SellPrice:  6.0,
		SellDate:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		ProfitLoss: 1.0,
	}
}

// WithShares sets the number of shares sold
func (b *SaleBuilder) WithShares(shares int64) *SaleBuilder {
	b.Shares = shares
	return b
}

// WithSellPrice sets the sell price per share
func (b *SaleBuilder) WithSellPrice(price float64) *SaleBuilder {
	b.SellPrice = price
	return b
}

// WithSellDate sets the sale timestamp
func (b *SaleBuilder) WithSellDate(date time.Time) *SaleBuilder {
	b.SellDate = date
	return b
}

// WithProfitLoss sets the recorded profit/loss
func (b *SaleBuilder) WithProfitLoss(pnl float64) *SaleBuilder {
	b.ProfitLoss = pnl
	return b
}

// Build creates the sale record in the database
func (b *SaleBuilder) Build(t *testing.T, db *sql.DB) model.SaleRecord {
	t.Helper()

	query := `
		INSERT INTO transactions (id, user_id, stock_id, shares, sell_price, sell_date, profit_loss)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.OwnerID, b.LotID, b.Shares, b.SellPrice,
		b.SellDate.UTC().Format("2006-01-02T15:04:05.000000000Z07:00"), b.ProfitLoss)
	if err != nil {
		t.Fatalf("Failed to create sale: %v", err)
	}

	return model.SaleRecord{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		LotID:      b.LotID,
		Shares:     b.Shares,
		SellPrice:  b.SellPrice,
		SellDate:   b.SellDate,
		ProfitLoss: b.ProfitLoss,
	}
}
