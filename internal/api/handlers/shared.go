package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/middleware"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/response"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
)

// maxBodyBytes caps request bodies; ledger requests are a handful of fields.
const maxBodyBytes = 1 << 16

// parseJSON decodes the request body into T, rejecting unknown fields and
// trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	if r.Body == nil {
		return v, fmt.Errorf("request body is required")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if dec.More() {
		return v, fmt.Errorf("request body must contain a single JSON object")
	}
	return v, nil
}

// requireOwner returns the authenticated owner or writes 401.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing owner")
		return "", false
	}
	return ownerID, true
}

// respondLedgerError maps a ledger error class to its HTTP status.
// fallback is the message used for storage faults.
func respondLedgerError(w http.ResponseWriter, err error, fallback error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, apperrors.ErrLotNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrLotNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidTransaction):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTransaction.Error(), err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		response.RespondError(w, http.StatusConflict, apperrors.ErrConflict.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
