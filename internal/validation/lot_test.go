package validation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/request"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestValidateOpenLot(t *testing.T) {
	valid := func() request.OpenLotRequest {
		return request.OpenLotRequest{
			Symbol:       "ACME",
			Shares:       i64(10),
			Price:        f64(5),
			PurchaseDate: "2024-01-01",
		}
	}

	t.Run("accepts a complete request", func(t *testing.T) {
		date, err := ValidateOpenLot(valid())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Unexpected purchase date %v", date)
		}
	})

	t.Run("accepts a zero price", func(t *testing.T) {
		req := valid()
		req.Price = f64(0)
		if _, err := ValidateOpenLot(req); err != nil {
			t.Errorf("Expected zero price to be valid, got %v", err)
		}
	})

	missing := map[string]func(*request.OpenLotRequest){
		"symbol":       func(r *request.OpenLotRequest) { r.Symbol = "  " },
		"shares":       func(r *request.OpenLotRequest) { r.Shares = nil },
		"price":        func(r *request.OpenLotRequest) { r.Price = nil },
		"purchaseDate": func(r *request.OpenLotRequest) { r.PurchaseDate = "" },
	}
	for field, mutate := range missing {
		t.Run("requires "+field, func(t *testing.T) {
			req := valid()
			mutate(&req)

			_, err := ValidateOpenLot(req)
			if !errors.Is(err, ErrAllFieldsRequired) {
				t.Errorf("Expected ErrAllFieldsRequired, got %v", err)
			}
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("Expected error to be a validation error, got %v", err)
			}
		})
	}

	invalid := map[string]func(*request.OpenLotRequest){
		"shares":       func(r *request.OpenLotRequest) { r.Shares = i64(0) },
		"price":        func(r *request.OpenLotRequest) { r.Price = f64(-0.01) },
		"purchaseDate": func(r *request.OpenLotRequest) { r.PurchaseDate = "01/01/2024" },
	}
	for field, mutate := range invalid {
		t.Run("rejects invalid "+field, func(t *testing.T) {
			req := valid()
			mutate(&req)

			_, err := ValidateOpenLot(req)
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error on %s, got %v", field, vErr.Fields)
			}
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("Expected error to unwrap to ErrValidation")
			}
		})
	}
}

func TestValidateOpenLot_Range(t *testing.T) {
	tests := []struct {
		name   string
		shares int64
		price  float64
	}{
		{"cost basis overflows", 4, 1e308},
		{"infinite price", 1, math.Inf(1)},
		{"NaN price", 1, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateOpenLot(request.OpenLotRequest{
				Symbol:       "ACME",
				Shares:       i64(tt.shares),
				Price:        f64(tt.price),
				PurchaseDate: "2024-01-01",
			})

			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if _, ok := vErr.Fields["price"]; !ok {
				t.Errorf("Expected error on price, got %v", vErr.Fields)
			}
		})
	}

	t.Run("largest finite cost basis is accepted", func(t *testing.T) {
		_, err := ValidateOpenLot(request.OpenLotRequest{
			Symbol:       "ACME",
			Shares:       i64(1),
			Price:        f64(math.MaxFloat64),
			PurchaseDate: "2024-01-01",
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}

func TestValidateSell(t *testing.T) {
	t.Run("returns parsed values", func(t *testing.T) {
		shares, price, err := ValidateSell(request.SellRequest{Shares: i64(4), SellPrice: f64(8)})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if shares != 4 || price != 8 {
			t.Errorf("Expected 4 @ 8, got %d @ %v", shares, price)
		}
	})

	t.Run("accepts a zero sell price", func(t *testing.T) {
		if _, _, err := ValidateSell(request.SellRequest{Shares: i64(1), SellPrice: f64(0)}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	cases := []struct {
		name  string
		req   request.SellRequest
		field string
	}{
		{"missing shares", request.SellRequest{SellPrice: f64(1)}, "shares"},
		{"zero shares", request.SellRequest{Shares: i64(0), SellPrice: f64(1)}, "shares"},
		{"negative shares", request.SellRequest{Shares: i64(-3), SellPrice: f64(1)}, "shares"},
		{"missing price", request.SellRequest{Shares: i64(1)}, "sellPrice"},
		{"negative price", request.SellRequest{Shares: i64(1), SellPrice: f64(-1)}, "sellPrice"},
		{"infinite price", request.SellRequest{Shares: i64(1), SellPrice: f64(math.Inf(1))}, "sellPrice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateSell(tc.req)

			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if _, ok := vErr.Fields[tc.field]; !ok {
				t.Errorf("Expected error on %s, got %v", tc.field, vErr.Fields)
			}
		})
	}
}

func TestValidateOwner(t *testing.T) {
	if err := ValidateOwner(""); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Expected validation error for empty owner, got %v", err)
	}
	if err := ValidateOwner("owner-1"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}

	err := ValidateUUID("42")
	if !errors.Is(err, ErrInvalidUUID) || !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Expected ErrInvalidUUID wrapping ErrValidation, got %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Fields: map[string]string{"shares": "bad", "price": "worse"}}
	if got := err.Error(); got != "price: worse; shares: bad" {
		t.Errorf("Unexpected message %q", got)
	}
}
