package request

// OpenLotRequest records a purchase. Every field is required; pointer
// fields distinguish an absent value from zero.
type OpenLotRequest struct {
	Symbol       string   `json:"symbol"`
	Shares       *int64   `json:"shares"`
	Price        *float64 `json:"price"`
	PurchaseDate string   `json:"purchaseDate"`
}

// SellRequest sells shares out of a single, explicitly named lot.
type SellRequest struct {
	Shares    *int64   `json:"shares"`
	SellPrice *float64 `json:"sellPrice"`
}
