package handlers_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/handlers"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/response"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/testutil"
)

func TestLotHandler_OpenLot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewLotHandler(testutil.NewTestLedgerService(t, db))
	owner := testutil.NewUser().Build(t, db)

	t.Run("creates a lot", func(t *testing.T) {
		body := map[string]any{"symbol": "ACME", "shares": 10, "price": 5.0, "purchaseDate": "2024-01-01"}
		req := testutil.NewOwnerRequest(t, owner.ID, http.MethodPost, "/api/lot", body, nil)
		w := httptest.NewRecorder()

		handler.OpenLot(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var lot model.Lot
		if err := json.NewDecoder(w.Body).Decode(&lot); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if lot.ID == "" || lot.Name != "ACME" || lot.Shares != 10 || lot.PurchasePrice != 5 {
			t.Errorf("Unexpected lot %+v", lot)
		}
	})

	t.Run("missing field is a bad request", func(t *testing.T) {
		body := map[string]any{"symbol": "ACME", "shares": 10, "purchaseDate": "2024-01-01"}
		req := testutil.NewOwnerRequest(t, owner.ID, http.MethodPost, "/api/lot", body, nil)
		w := httptest.NewRecorder()

		handler.OpenLot(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var resp response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if details, _ := resp.Details.(string); details == "" {
			t.Error("Expected error details")
		}
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		req := testutil.NewOwnerRequest(t, owner.ID, http.MethodPost, "/api/lot", `{"symbol":`, nil)
		w := httptest.NewRecorder()

		handler.OpenLot(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("unknown field is a bad request", func(t *testing.T) {
		body := map[string]any{"symbol": "ACME", "shares": 1, "price": 1.0, "purchaseDate": "2024-01-01", "fee": 2}
		req := testutil.NewOwnerRequest(t, owner.ID, http.MethodPost, "/api/lot", body, nil)
		w := httptest.NewRecorder()

		handler.OpenLot(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/lot", nil)
		w := httptest.NewRecorder()

		handler.OpenLot(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}

func TestLotHandler_GetLot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewLotHandler(testutil.NewTestLedgerService(t, db))
	owner := testutil.NewUser().Build(t, db)
	other := testutil.NewUser().Build(t, db)
	lot := testutil.NewLot(owner.ID).Build(t, db)

	t.Run("returns the owner's lot", func(t *testing.T) {
		req := testutil.NewOwnerRequest(t, owner.ID, http.MethodGet, "/api/lot/"+lot.ID, nil, map[string]string{"uuid": lot.ID})
		w := httptest.NewRecorder()

		handler.GetLot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var got model.Lot
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.ID != lot.ID {
			t.Errorf("Expected lot %s, got %s", lot.ID, got.ID)
		}
	})

	t.Run("another owner's lot is not found", func(t *testing.T) {
		req := testutil.NewOwnerRequest(t, other.ID, http.MethodGet, "/api/lot/"+lot.ID, nil, map[string]string{"uuid": lot.ID})
		w := httptest.NewRecorder()

		handler.GetLot(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestLotHandler_SellLot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewLotHandler(testutil.NewTestLedgerService(t, db))
	owner := testutil.NewUser().Build(t, db)

	sell := func(t *testing.T, ownerID, lotID string, body any) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewOwnerRequest(t, ownerID, http.MethodPost, "/api/lot/"+lotID+"/sell", body, map[string]string{"uuid": lotID})
		w := httptest.NewRecorder()
		handler.SellLot(w, req)
		return w
	}

	t.Run("returns profit and loss", func(t *testing.T) {
		lot := testutil.NewLot(owner.ID).WithShares(10).WithPurchasePrice(5).Build(t, db)

		w := sell(t, owner.ID, lot.ID, map[string]any{"shares": 4, "sellPrice": 8.0})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.SellResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.Success {
			t.Error("Expected success=true")
		}
		if math.Abs(resp.ProfitLoss-12) > 1e-9 {
			t.Errorf("Expected profit_loss 12, got %v", resp.ProfitLoss)
		}
		if resp.SharesRemaining != 6 || resp.LotClosed {
			t.Errorf("Expected 6 remaining, got %+v", resp)
		}
	})

	t.Run("closing sale reports the lot closed", func(t *testing.T) {
		lot := testutil.NewLot(owner.ID).WithShares(6).WithPurchasePrice(5).Build(t, db)

		w := sell(t, owner.ID, lot.ID, map[string]any{"shares": 6, "sellPrice": 3.0})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp handlers.SellResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.LotClosed || math.Abs(resp.ProfitLoss-(-12)) > 1e-9 {
			t.Errorf("Expected closed lot with -12, got %+v", resp)
		}
	})

	tests := []struct {
		name   string
		shares int64
		body   any
		status int
	}{
		{"oversell", 10, map[string]any{"shares": 11, "sellPrice": 8.0}, http.StatusUnprocessableEntity},
		{"zero shares", 10, map[string]any{"shares": 0, "sellPrice": 8.0}, http.StatusBadRequest},
		{"missing price", 10, map[string]any{"shares": 1}, http.StatusBadRequest},
		{"fractional shares", 10, `{"shares": 1.5, "sellPrice": 8}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := testutil.NewLot(owner.ID).WithShares(tt.shares).Build(t, db)

			w := sell(t, owner.ID, lot.ID, tt.body)
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if shares, _ := testutil.LotShares(t, db, lot.ID); shares != tt.shares {
				t.Errorf("Expected shares unchanged at %d, got %d", tt.shares, shares)
			}
		})
	}

	t.Run("another owner's lot is not found", func(t *testing.T) {
		other := testutil.NewUser().Build(t, db)
		lot := testutil.NewLot(other.ID).Build(t, db)

		w := sell(t, owner.ID, lot.ID, map[string]any{"shares": 1, "sellPrice": 8.0})
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
