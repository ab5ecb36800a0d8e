package mobile

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
)

func setupMobileCore(t *testing.T) (*Core, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	core, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cleanup := func() {
		_ = core.Close()
	}
	return core, cleanup
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return out
}

func TestMobileCoreJSONFlows(t *testing.T) {
	core, cleanup := setupMobileCore(t)
	defer cleanup()

	resp, err := core.AddJournalJSON(`{"name":"Mobile"}`)
	if err != nil {
		t.Fatalf("AddJournalJSON: %v", err)
	}
	result := decode(t, resp)
	if result["code"] != "201" {
		t.Fatalf("unexpected journal result: %v", result)
	}
	journalID := int64(result["journal"].(map[string]any)["id"].(float64))

	resp, err = core.AddStockJSON(`{"symbol":"sm"}`)
	if err != nil {
		t.Fatalf("AddStockJSON: %v", err)
	}
	stockID := int64(decode(t, resp)["id"].(float64))

	resp, err = core.AddTradeTransactionJSON(fmt.Sprintf(
		`{"journal_id":%d,"stock_id":%d,"action":"BUY","shares":10,"net_amount":9000,"transaction_date":"2024-03-01"}`,
		journalID, stockID))
	if err != nil {
		t.Fatalf("AddTradeTransactionJSON: %v", err)
	}
	if result := decode(t, resp); result["code"] != "201" {
		t.Fatalf("unexpected trade result: %v", result)
	}

	resp, err = core.AddTradeTransactionJSON(fmt.Sprintf(
		`{"journal_id":%d,"stock_id":%d,"action":"SELL","shares":20,"net_amount":19000}`, journalID, stockID))
	if err != nil {
		t.Fatalf("rejection must not surface as error: %v", err)
	}
	if result := decode(t, resp); result["code"] != "400" || result["error_code"] != "OVERSELL" {
		t.Fatalf("unexpected oversell result: %v", result)
	}

	resp, err = core.AddWalletTransactionJSON(fmt.Sprintf(`{"journal_id":%d,"action":"DEPOSIT","net_amount":500}`, journalID))
	if err != nil {
		t.Fatalf("AddWalletTransactionJSON: %v", err)
	}
	if result := decode(t, resp); result["code"] != "201" {
		t.Fatalf("unexpected wallet result: %v", result)
	}

	if resp, err = core.GetWalletJSON(journalID); err != nil || decode(t, resp)["balance"].(float64) != 500 {
		t.Fatalf("GetWalletJSON: %q %v", resp, err)
	}
	if _, err := core.GetTradesJSON(journalID, "active"); err != nil {
		t.Fatalf("GetTradesJSON: %v", err)
	}
	if _, err := core.GetTradeTransactionsJSON(journalID, stockID); err != nil {
		t.Fatalf("GetTradeTransactionsJSON: %v", err)
	}
	if _, err := core.GetWalletTransactionsJSON(journalID); err != nil {
		t.Fatalf("GetWalletTransactionsJSON: %v", err)
	}
	if _, err := core.GetJournalsJSON(); err != nil {
		t.Fatalf("GetJournalsJSON: %v", err)
	}
	resp, err = core.GetJournalSummaryJSON(journalID)
	if err != nil {
		t.Fatalf("GetJournalSummaryJSON: %v", err)
	}
	if summary := decode(t, resp); summary["open_positions"].(float64) != 1 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestMobileCoreErrors(t *testing.T) {
	core, cleanup := setupMobileCore(t)
	defer cleanup()

	if _, err := core.AddJournalJSON("{bad"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := core.AddTradeTransactionJSON("{bad"); err == nil {
		t.Fatal("expected error for malformed trade JSON")
	}
	if _, err := core.GetJournalSummaryJSON(99); err == nil {
		t.Fatal("expected error for missing journal")
	}
	if _, err := core.BuyCalculatorJSON("abc", 10, 0, 2024); err == nil {
		t.Fatal("expected error for invalid price")
	}

	resp, err := core.BuyCalculatorJSON("10", 1000, 0, 2024)
	if err != nil {
		t.Fatalf("BuyCalculatorJSON: %v", err)
	}
	buy := decode(t, resp)["buy"].(map[string]any)
	if buy["net_amount"] != "10029.5" {
		t.Fatalf("unexpected buy summary: %v", buy)
	}

	var nilCore *Core
	if err := nilCore.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}
