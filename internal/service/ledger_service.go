package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/request"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/repository"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/validation"
)

// LedgerService implements buying into lots, listing the portfolio and
// settling sales against a named lot. The owner is always passed explicitly;
// the service never reads it from a context or session.
type LedgerService struct {
	db       *sql.DB
	lotRepo  *repository.LotRepository
	saleRepo *repository.SaleRepository
	now      func() time.Time
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	db *sql.DB,
	lotRepo *repository.LotRepository,
	saleRepo *repository.SaleRepository,
) *LedgerService {
	return &LedgerService{
		db:       db,
		lotRepo:  lotRepo,
		saleRepo: saleRepo,
		now:      time.Now,
	}
}

// RealizedProfitLoss returns shares * (sellPrice - costBasis).
func RealizedProfitLoss(shares int64, sellPrice, costBasis float64) float64 {
	return float64(shares) * (sellPrice - costBasis)
}

// TotalValue sums the cost basis of lots.
func TotalValue(lots []model.Lot) float64 {
	var total float64
	for _, lot := range lots {
		total += lot.CostBasis()
	}
	return total
}

// OpenLot records a purchase as a new lot and returns it.
// Each purchase is a distinct lot, even when the symbol is already held.
func (s *LedgerService) OpenLot(ctx context.Context, ownerID string, req request.OpenLotRequest) (*model.Lot, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return nil, err
	}

	purchaseDate, err := validation.ValidateOpenLot(req)
	if err != nil {
		return nil, err
	}

	lot := &model.Lot{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(req.Symbol),
		Shares:        *req.Shares,
		PurchasePrice: *req.Price,
		PurchaseDate:  purchaseDate,
		CreatedAt:     s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrStorage, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lotRepo := s.lotRepo.WithTx(tx)

	lots, err := lotRepo.GetLots(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to open lot: %w", err)
	}
	if !validation.IsFinite(TotalValue(lots) + lot.CostBasis()) {
		return nil, fmt.Errorf("%w: portfolio value would exceed the representable range", apperrors.ErrValidation)
	}

	if err := lotRepo.InsertLot(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to open lot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit lot: %w", apperrors.ErrStorage, err)
	}

	log.Printf("ledger: owner %s opened lot %s (%s, %d @ %.4f)", ownerID, lot.ID, lot.Name, lot.Shares, lot.PurchasePrice)

	return lot, nil
}

// GetLot retrieves an active lot owned by ownerID.
func (s *LedgerService) GetLot(ctx context.Context, ownerID, lotID string) (model.Lot, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return model.Lot{}, err
	}
	return s.lotRepo.GetLot(ctx, ownerID, lotID)
}

// ListPortfolio returns the owner's active lots valued at cost basis,
// together with the profit/loss realized by past sales.
func (s *LedgerService) ListPortfolio(ctx context.Context, ownerID string) (*model.Portfolio, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return nil, err
	}

	// Lots and realized totals are read from one snapshot so a concurrent
	// sell is either fully reflected or not at all.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrStorage, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lots, err := s.lotRepo.WithTx(tx).GetLots(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	realized, err := s.saleRepo.WithTx(tx).GetRealizedProfitLoss(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to end read transaction: %w", apperrors.ErrStorage, err)
	}

	totalValue := TotalValue(lots)
	if !validation.IsFinite(totalValue) || !validation.IsFinite(realized) {
		return nil, fmt.Errorf("%w: portfolio totals are not finite", apperrors.ErrStorage)
	}

	return &model.Portfolio{
		Stocks:             lots,
		TotalValue:         totalValue,
		RealizedProfitLoss: realized,
	}, nil
}

// Sell settles a sale of req.Shares out of lot lotID at req.SellPrice.
//
// The lot read, the quantity check, the sale record and the lot decrement
// happen in one database transaction, so a failed sell leaves nothing behind
// and two concurrent sells can never jointly exceed the lot's shares.
// The lot is deleted when its shares reach zero.
//
// Errors: apperrors.ErrValidation for a malformed request,
// apperrors.ErrLotNotFound when the lot is absent or foreign,
// apperrors.ErrInvalidTransaction when selling more than remains,
// apperrors.ErrStorage on database failure.
func (s *LedgerService) Sell(ctx context.Context, ownerID, lotID string, req request.SellRequest) (*model.SellResult, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return nil, err
	}

	shares, sellPrice, err := validation.ValidateSell(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrStorage, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lotRepo := s.lotRepo.WithTx(tx)
	saleRepo := s.saleRepo.WithTx(tx)

	lot, err := lotRepo.GetLot(ctx, ownerID, lotID)
	if err != nil {
		return nil, err
	}

	if shares > lot.Shares {
		return nil, fmt.Errorf("%w: cannot sell %d shares, lot %s holds %d", apperrors.ErrInvalidTransaction, shares, lot.ID, lot.Shares)
	}

	sale := model.SaleRecord{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		LotID:      lot.ID,
		Shares:     shares,
		SellPrice:  sellPrice,
		SellDate:   s.now().UTC(),
		ProfitLoss: RealizedProfitLoss(shares, sellPrice, lot.PurchasePrice),
	}

	realized, err := saleRepo.GetRealizedProfitLoss(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !validation.IsFinite(sale.ProfitLoss) || !validation.IsFinite(realized+sale.ProfitLoss) {
		return nil, fmt.Errorf("%w: profit/loss of this sale exceeds the representable range", apperrors.ErrValidation)
	}

	if err := saleRepo.InsertSale(ctx, &sale); err != nil {
		return nil, err
	}

	remaining, err := lotRepo.ReduceOrCloseLot(ctx, ownerID, lot.ID, shares)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit sale: %w", apperrors.ErrStorage, err)
	}

	if remaining == 0 {
		log.Printf("ledger: owner %s sold %d of lot %s, lot closed, profit/loss %.4f", ownerID, shares, lot.ID, sale.ProfitLoss)
	} else {
		log.Printf("ledger: owner %s sold %d of lot %s, %d remaining, profit/loss %.4f", ownerID, shares, lot.ID, remaining, sale.ProfitLoss)
	}

	return &model.SellResult{
		Sale:            sale,
		SharesRemaining: remaining,
		LotClosed:       remaining == 0,
	}, nil
}

// ListSales returns the owner's sale history matching filter, including
// sales against lots that have since been closed.
func (s *LedgerService) ListSales(ctx context.Context, ownerID string, filter model.SaleFilter) ([]model.SaleRecord, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return nil, err
	}
	return s.saleRepo.GetSales(ctx, ownerID, filter)
}

// HasPortfolio reports whether the owner holds at least one active lot.
func (s *LedgerService) HasPortfolio(ctx context.Context, ownerID string) (bool, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return false, err
	}
	count, err := s.lotRepo.CountLots(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
