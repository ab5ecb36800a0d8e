package api

import (
	"net/http"
	"path/filepath"
	"testing"

	"tradejournal/pkg/tradejournal"
)

func setupClosedRouter(t *testing.T) http.Handler {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	core, err := tradejournal.OpenWithOptions(tradejournal.Options{DBPath: dbPath, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("open core: %v", err)
	}
	router := NewRouter(core)
	_ = core.Close()
	return router
}

func TestHandlersInternalErrorsWhenDBClosed(t *testing.T) {
	router := setupClosedRouter(t)

	endpoints := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/journals", nil},
		{http.MethodGet, "/api/journals/1", nil},
		{http.MethodGet, "/api/journals/1/trades", nil},
		{http.MethodGet, "/api/journals/1/trade-transactions", nil},
		{http.MethodGet, "/api/journals/1/wallet", nil},
		{http.MethodGet, "/api/journals/1/wallet-transactions", nil},
		{http.MethodGet, "/api/journals/1/summary", nil},
		{http.MethodGet, "/api/stocks", nil},
		{http.MethodGet, "/api/stocks/ALI/data", nil},
		{http.MethodPost, "/api/journals/1/trade-transactions", map[string]any{"stock_id": 1, "action": "BUY", "shares": 1, "net_amount": 10}},
		{http.MethodPost, "/api/journals/1/wallet-transactions", map[string]any{"action": "DEPOSIT", "net_amount": 10}},
	}

	for _, ep := range endpoints {
		rr := doRequest(router, ep.method, ep.path, ep.body)
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected 500, got %d", ep.method, ep.path, rr.Code)
		}
	}

	rr := doRequest(router, http.MethodPost, "/api/journals/1/wallet-transactions", map[string]any{"action": "DEPOSIT", "net_amount": 10})
	if result := parseJSON(rr); result["message"] != tradejournal.MsgStorageFailure || result["code"] != "500" {
		t.Fatalf("expected generic storage failure, got %v", result)
	}
}
