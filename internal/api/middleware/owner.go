package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/response"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/validation"
)

type ownerKey struct{}

var errInvalidToken = errors.New("invalid owner token")

// WithOwner returns a copy of ctx carrying the authenticated owner id.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext returns the owner id stored by OwnerAuth.
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)
	return ownerID, ok && ownerID != ""
}

// OwnerAuth verifies owner tokens issued by the authentication service.
// A token is a fernet token whose plaintext is the owner's UUID, sent as
// "Authorization: Bearer <token>".
type OwnerAuth struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewOwnerAuth creates an OwnerAuth accepting tokens signed by any of keys
// and no older than ttl.
func NewOwnerAuth(keys []*fernet.Key, ttl time.Duration) *OwnerAuth {
	return &OwnerAuth{keys: keys, ttl: ttl}
}

// Handler rejects requests without a valid owner token with 401 Unauthorized
// and otherwise stores the owner id in the request context.
func (a *OwnerAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing owner token")
			return
		}

		ownerID, err := a.Verify(strings.TrimSpace(token))
		if err != nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid owner token")
			return
		}

		setOwner(w, ownerID)
		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), ownerID)))
	})
}

// Verify checks the token signature and age and returns the owner id it carries.
func (a *OwnerAuth) Verify(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), a.ttl, a.keys)
	if msg == nil {
		return "", errInvalidToken
	}

	ownerID := string(msg)
	if err := validation.ValidateUUID(ownerID); err != nil {
		return "", errInvalidToken
	}
	return ownerID, nil
}

