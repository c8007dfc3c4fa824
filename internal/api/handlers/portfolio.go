package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/response"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	ledgerService *service.LedgerService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(ledgerService *service.LedgerService) *PortfolioHandler {
	return &PortfolioHandler{
		ledgerService: ledgerService,
	}
}

// Portfolio returns the owner's active lots and their cost-basis total.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with Portfolio (empty stocks list if nothing is held)
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	portfolio, err := h.ledgerService.ListPortfolio(r.Context(), ownerID)
	if err != nil {
		respondLedgerError(w, err, apperrors.ErrFailedToGetPortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// ExistsResponse reports whether the owner holds any lot.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// Exists reports whether the owner holds at least one active lot.
//
// Endpoint: GET /api/portfolio/exists
// Response: 200 OK with ExistsResponse
func (h *PortfolioHandler) Exists(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	exists, err := h.ledgerService.HasPortfolio(r.Context(), ownerID)
	if err != nil {
		respondLedgerError(w, err, apperrors.ErrFailedToGetPortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}
