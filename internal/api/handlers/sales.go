package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/request"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/response"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/service"
)

// SaleHandler serves the sale history.
type SaleHandler struct {
	ledgerService *service.LedgerService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(ledgerService *service.LedgerService) *SaleHandler {
	return &SaleHandler{
		ledgerService: ledgerService,
	}
}

// Sales lists the owner's sale records, optionally filtered.
//
// Endpoint: GET /api/sale?lot={uuid}&start_date=&end_date=&sort_dir=
// Response: 200 OK with array of SaleRecord
// Error: 400 Bad Request if a filter is malformed
func (h *SaleHandler) Sales(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filters, err := request.ParseSaleFilters(q.Get("lot"), q.Get("start_date"), q.Get("end_date"), q.Get("sort_dir"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	sales, err := h.ledgerService.ListSales(r.Context(), ownerID, *filters)
	if err != nil {
		respondLedgerError(w, err, apperrors.ErrFailedToRetrieveSales)
		return
	}

	response.RespondJSON(w, http.StatusOK, sales)
}
