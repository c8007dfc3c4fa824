package apperrors

import "errors"

// Error classes. Every error returned by the ledger wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrLotNotFound indicates that the lot does not exist or belongs to another owner.
	// The two cases are indistinguishable.
	ErrLotNotFound = errors.New("lot not found")

	// ErrInvalidTransaction indicates a sell of more shares than the lot holds.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrConflict indicates that the lot changed between validation and update.
	ErrConflict = errors.New("concurrent modification")

	// ErrStorage indicates that the underlying database failed.
	// It is the only class a caller may retry.
	ErrStorage = errors.New("storage fault")
)

// Operation failure errors used as user-facing messages by the HTTP layer.
var (
	ErrFailedToOpenLot        = errors.New("failed to open lot")
	ErrFailedToRetrieveLot    = errors.New("failed to retrieve lot")
	ErrFailedToGetPortfolio   = errors.New("failed to get portfolio")
	ErrFailedToSellLot        = errors.New("failed to sell lot")
	ErrFailedToRetrieveSales  = errors.New("failed to retrieve sales")
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
