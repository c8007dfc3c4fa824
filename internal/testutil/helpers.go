package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/repository"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/service"
)

var nameCounter atomic.Int64

// NewTestLedgerService wires a LedgerService against db.
func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(
		db,
		repository.NewLotRepository(db),
		repository.NewSaleRepository(db),
	)
}

// NewTestSystemService wires a SystemService against db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestKey generates a fresh fernet key for owner tokens.
func NewTestKey(t *testing.T) *fernet.Key {
	t.Helper()

	var k fernet.Key
	if err := k.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return &k
}

// NewOwnerToken issues an owner token the way the authentication service does.
func NewOwnerToken(t *testing.T, key *fernet.Key, ownerID string) string {
	t.Helper()

	tok, err := fernet.EncryptAndSign([]byte(ownerID), key)
	if err != nil {
		t.Fatalf("Failed to sign owner token: %v", err)
	}
	return string(tok)
}

// MakeID returns a new random UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeUsername returns a unique username with the given prefix.
func MakeUsername(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, nameCounter.Add(1))
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}
