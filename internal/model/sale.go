package model

import "time"

// SaleRecord is the immutable record of one settlement against a lot.
// LotID is a plain lookup key; the lot may no longer exist.
type SaleRecord struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	LotID      string    `json:"stockId"`
	Shares     int64     `json:"shares"`
	SellPrice  float64   `json:"sellPrice"`
	SellDate   time.Time `json:"sellDate"`
	ProfitLoss float64   `json:"profitLoss"`
}

// SellResult is the outcome of a settlement.
type SellResult struct {
	Sale            SaleRecord `json:"sale"`
	SharesRemaining int64      `json:"sharesRemaining"`
	LotClosed       bool       `json:"lotClosed"`
}

// SaleFilter narrows a sale history query. Zero values match everything.
type SaleFilter struct {
	LotID     string
	StartDate *time.Time
	EndDate   *time.Time
	SortDir   string // "asc" or "desc"
}
