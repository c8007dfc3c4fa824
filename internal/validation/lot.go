package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/request"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
)

// ErrAllFieldsRequired is returned when an open-lot request omits any field.
var ErrAllFieldsRequired = fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)

// ErrMissingOwner is returned when an operation is attempted without an owner.
var ErrMissingOwner = fmt.Errorf("%w: owner is required", apperrors.ErrValidation)

// ValidateOwner checks that an owner id was supplied by the caller.
func ValidateOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrMissingOwner
	}
	return nil
}

// ValidateOpenLot validates a purchase and returns the parsed purchase date.
//
// Required fields:
//   - symbol: non-blank
//   - shares: positive integer
//   - price: zero or positive
//   - purchaseDate: YYYY-MM-DD
//
// Missing fields fail with ErrAllFieldsRequired before any range check.
func ValidateOpenLot(req request.OpenLotRequest) (time.Time, error) {
	if strings.TrimSpace(req.Symbol) == "" || req.Shares == nil || req.Price == nil || strings.TrimSpace(req.PurchaseDate) == "" {
		return time.Time{}, ErrAllFieldsRequired
	}

	errors := make(map[string]string)

	if *req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}

	if *req.Price < 0 {
		errors["price"] = "price cannot be negative"
	} else if !IsFinite(*req.Price) || !IsFinite(float64(*req.Shares)*(*req.Price)) {
		errors["price"] = "price is out of range"
	}

	purchaseDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.PurchaseDate))
	if err != nil {
		errors["purchaseDate"] = "purchaseDate must be in YYYY-MM-DD format"
	}

	if len(errors) > 0 {
		return time.Time{}, &Error{Fields: errors}
	}

	return purchaseDate, nil
}

// ValidateSell validates a sell request and returns the share count and price.
func ValidateSell(req request.SellRequest) (int64, float64, error) {
	errors := make(map[string]string)

	if req.Shares == nil {
		errors["shares"] = "shares is required"
	} else if *req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}

	if req.SellPrice == nil {
		errors["sellPrice"] = "sellPrice is required"
	} else if *req.SellPrice < 0 {
		errors["sellPrice"] = "sellPrice cannot be negative"
	} else if !IsFinite(*req.SellPrice) {
		errors["sellPrice"] = "sellPrice is out of range"
	}

	if len(errors) > 0 {
		return 0, 0, &Error{Fields: errors}
	}

	return *req.Shares, *req.SellPrice, nil
}

// IsFinite reports whether v is neither infinite nor NaN.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
