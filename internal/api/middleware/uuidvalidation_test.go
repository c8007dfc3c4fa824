package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/middleware"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		uuid       string
		wantCalled bool
		wantStatus int
	}{
		{"passes through valid UUID", "550e8400-e29b-41d4-a716-446655440000", true, http.StatusOK},
		{"returns 400 for invalid UUID", "invalid-id", false, http.StatusBadRequest},
		{"returns 400 for empty UUID", "", false, http.StatusBadRequest},
		{"returns 400 for numeric id", "42", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/lot/"+tt.uuid, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uuid", tt.uuid)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected handler called=%v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
