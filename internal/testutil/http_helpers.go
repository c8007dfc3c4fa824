package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/middleware"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/lot/123-456",
//	    map[string]string{"uuid": "123-456"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	return newRequest(method, path, nil, params)
}

// NewOwnerRequest creates an HTTP request authenticated as ownerID, with an
// optional JSON body and chi URL parameters.
//
// Example:
//
//	req := testutil.NewOwnerRequest(t, owner.ID, http.MethodPost, "/api/lot",
//	    map[string]any{"symbol": "ACME"}, nil)
func NewOwnerRequest(t *testing.T, ownerID, method, path string, body any, params map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}
			reader = bytes.NewReader(data)
		}
	}

	req := newRequest(method, path, reader, params)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithOwner(req.Context(), ownerID))
}

// NewRequestWithQueryParams creates an HTTP request with query parameters.
func NewRequestWithQueryParams(method, path string, queryParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}

func newRequest(method, path string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, body)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}
