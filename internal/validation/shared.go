package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/apperrors"
)

// Error carries field-specific validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Unwrap classifies every field error as apperrors.ErrValidation.
func (e *Error) Unwrap() error {
	return apperrors.ErrValidation
}
