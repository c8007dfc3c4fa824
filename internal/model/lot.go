package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Lot is one purchase of shares of a symbol. Shares only ever decrease;
// a lot whose shares reach zero is deleted.
type Lot struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"-"`
	Name          string    `json:"name"`
	Shares        int64     `json:"shares"`
	PurchasePrice float64   `json:"purchasePrice"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// CostBasis returns the lot's remaining shares valued at purchase price.
func (l Lot) CostBasis() float64 {
	return float64(l.Shares) * l.PurchasePrice
}

// lotJSON has Lot's fields without its JSON methods.
type lotJSON Lot

// MarshalJSON renders PurchaseDate as a calendar date (YYYY-MM-DD).
func (l Lot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		lotJSON
		PurchaseDate string `json:"purchaseDate"`
	}{
		lotJSON:      lotJSON(l),
		PurchaseDate: l.PurchaseDate.Format(DateLayout),
	})
}

// UnmarshalJSON accepts PurchaseDate as a calendar date (YYYY-MM-DD).
func (l *Lot) UnmarshalJSON(data []byte) error {
	aux := struct {
		*lotJSON
		PurchaseDate string `json:"purchaseDate"`
	}{
		lotJSON: (*lotJSON)(l),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.PurchaseDate != "" {
		date, err := time.Parse(DateLayout, aux.PurchaseDate)
		if err != nil {
			return fmt.Errorf("invalid purchaseDate: %w", err)
		}
		l.PurchaseDate = date
	}
	return nil
}

// Portfolio is an owner's active lots valued at cost basis.
type Portfolio struct {
	Stocks             []Lot   `json:"stocks"`
	TotalValue         float64 `json:"totalValue"`
	RealizedProfitLoss float64 `json:"realizedProfitLoss"`
}
