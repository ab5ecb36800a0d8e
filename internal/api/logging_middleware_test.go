package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

func captureRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router, cleanup := setupRouterWithLogger(t, logger)
	t.Cleanup(cleanup)
	return router, &buf
}

// captureDefault routes slog.Default into a buffer for routers built
// without a core.
func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func assertLogged(t *testing.T, logs string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(logs, w) {
			t.Fatalf("expected %q in logs, got %q", w, logs)
		}
	}
}

func TestRequestLogFields(t *testing.T) {
	router, buf := captureRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	assertLogged(t, buf.String(),
		"level=INFO",
		"http request completed",
		"method=GET",
		"path=/api/health",
		"status=200",
		"request_id=",
		"duration_ms=",
	)
	if strings.Contains(buf.String(), "query=") {
		t.Fatalf("empty query must not be logged: %q", buf.String())
	}
}

func TestRequestLogWarnsOnBadRequest(t *testing.T) {
	router, buf := captureRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/journals/invalid/trades?status=active", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	assertLogged(t, buf.String(),
		"level=WARN",
		"status=400",
		`query="status=active"`,
		`error_message="invalid id"`,
	)
}

func TestRequestLogCarriesLedgerOutcome(t *testing.T) {
	router, buf := captureRouter(t)
	journalID := createJournal(t, router, "Main")
	buf.Reset()

	path := fmt.Sprintf("/api/journals/%d/wallet-transactions", journalID)
	rr := doRequest(router, http.MethodPost, path, map[string]any{"action": "WITHDRAWAL", "net_amount": 100})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	assertLogged(t, buf.String(),
		"result_code=400",
		"error_code=EMPTY_WALLET",
		fmt.Sprintf("journal_id=%d", journalID),
		"route=/api/journals/{id}/wallet-transactions",
	)

	buf.Reset()
	rr = doRequest(router, http.MethodPost, path, map[string]any{"action": "DEPOSIT", "net_amount": 100})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	assertLogged(t, buf.String(), "result_code=201")
	if strings.Contains(buf.String(), "error_message=") {
		t.Fatalf("accepted mutation must not log an error: %q", buf.String())
	}
}

func TestRequestLogIncludesSymbol(t *testing.T) {
	router, buf := captureRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/stocks/ALI/data", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	assertLogged(t, buf.String(), "symbol=ALI", "route=/api/stocks/{symbol}/data")
}

func TestRecoveredPanicIsLoggedAndAnswered(t *testing.T) {
	buf := captureDefault(t)

	// A router without a core panics inside every ledger handler.
	router := NewRouter(nil)
	rr := doRequest(router, http.MethodGet, "/api/journals", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	body := parseJSON(rr)
	if body["message"] != "internal server error" || body["error_code"] != "INTERNAL_ERROR" {
		t.Fatalf("expected structured error response, got %v", body)
	}
	if body["request_id"] == nil {
		t.Fatalf("expected request id in response, got %v", body)
	}
	assertLogged(t, buf.String(), "panic recovered", "stack=", "level=ERROR", "status=500")
}

func TestRequestLogsUseCoreLogger(t *testing.T) {
	router, buf := captureRouter(t)
	defaults := captureDefault(t)

	rr := doRequest(router, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	assertLogged(t, buf.String(), "http request completed")
	if defaults.Len() != 0 {
		t.Fatalf("expected no log written to slog default, got %q", defaults.String())
	}
}
