package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/request"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/response"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/service"
)

// LotHandler handles HTTP requests for lot endpoints.
// It parses requests and delegates business logic to the LedgerService.
type LotHandler struct {
	ledgerService *service.LedgerService
}

// NewLotHandler creates a new LotHandler with the provided service dependency.
func NewLotHandler(ledgerService *service.LedgerService) *LotHandler {
	return &LotHandler{
		ledgerService: ledgerService,
	}
}

// SellResponse is returned by a successful sell.
type SellResponse struct {
	Success         bool             `json:"success"`
	ProfitLoss      float64          `json:"profit_loss"`
	SharesRemaining int64            `json:"sharesRemaining"`
	LotClosed       bool             `json:"lotClosed"`
	Sale            model.SaleRecord `json:"sale"`
}

// OpenLot handles POST requests recording a purchase.
//
// Endpoint: POST /api/lot
// Request Body: OpenLotRequest (symbol, shares, price, purchaseDate)
// Response: 201 Created with Lot
// Error: 400 Bad Request if any field is missing or invalid
// Error: 500 Internal Server Error if the lot cannot be stored
func (h *LotHandler) OpenLot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.OpenLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lot, err := h.ledgerService.OpenLot(r.Context(), ownerID, req)
	if err != nil {
		respondLedgerError(w, err, apperrors.ErrFailedToOpenLot)
		return
	}

	response.RespondJSON(w, http.StatusCreated, lot)
}

// GetLot handles GET requests for a single active lot.
//
// Endpoint: GET /api/lot/{uuid}
// Response: 200 OK with Lot
// Error: 404 Not Found if the lot is closed, missing or owned by someone else
func (h *LotHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	lot, err := h.ledgerService.GetLot(r.Context(), ownerID, chi.URLParam(r, "uuid"))
	if err != nil {
		respondLedgerError(w, err, apperrors.ErrFailedToRetrieveLot)
		return
	}

	response.RespondJSON(w, http.StatusOK, lot)
}

// SellLot handles POST requests selling shares out of a lot.
//
// Endpoint: POST /api/lot/{uuid}/sell
// Request Body: SellRequest (shares, sellPrice)
// Response: 200 OK with SellResponse
// Error: 400 Bad Request if the request is malformed
// Error: 404 Not Found if the lot is closed, missing or owned by someone else
// Error: 409 Conflict if the lot changed concurrently
// Error: 422 Unprocessable Entity if more shares are sold than the lot holds
func (h *LotHandler) SellLot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.SellRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerService.Sell(r.Context(), ownerID, chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondLedgerError(w, err, apperrors.ErrFailedToSellLot)
		return
	}

	response.RespondJSON(w, http.StatusOK, SellResponse{
		Success:         true,
		ProfitLoss:      result.Sale.ProfitLoss,
		SharesRemaining: result.SharesRemaining,
		LotClosed:       result.LotClosed,
		Sale:            result.Sale,
	})
}
