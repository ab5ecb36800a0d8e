package tradejournal

import (
	"context"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestAddStock_Upsert(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first, err := core.AddStock(ctx, Stock{Symbol: " ali ", Name: strPtr("Ayala Land"), CompanyID: strPtr("180")})
	assertNoError(t, err, "add stock")
	if first.Symbol != "ALI" || first.Name == nil || *first.Name != "Ayala Land" {
		t.Fatalf("unexpected stock: %+v", first)
	}

	second, err := core.AddStock(ctx, Stock{Symbol: "ALI", SecuritySymbolID: strPtr("158")})
	assertNoError(t, err, "upsert stock")
	if second.ID != first.ID {
		t.Errorf("expected same id on upsert, got %d and %d", first.ID, second.ID)
	}
	if second.Name == nil || *second.Name != "Ayala Land" {
		t.Errorf("expected name kept, got %v", second.Name)
	}
	if second.SecuritySymbolID == nil || *second.SecuritySymbolID != "158" {
		t.Errorf("expected security symbol id set, got %v", second.SecuritySymbolID)
	}

	stocks, err := core.GetStocks(ctx)
	assertNoError(t, err, "get stocks")
	if len(stocks) != 1 {
		t.Fatalf("expected 1 stock, got %d", len(stocks))
	}

	if _, err := core.AddStock(ctx, Stock{Symbol: "  "}); !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error for blank symbol, got %v", err)
	}
	if _, err := core.GetStockBySymbol(ctx, "XYZ"); !IsErrorCode(err, ErrCodeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestStockData(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	testStock(t, core, "ALI")

	saved, err := core.UpsertStockData(ctx, "ali", []StockData{
		{Date: "2024-03-02", Open: NewAmount(31), High: NewAmount(32), Low: NewAmount(30.5), Close: NewAmount(31.5), Volume: NewAmount(1000)},
		{Date: "2024-03-01", Open: NewAmount(30), High: NewAmount(31), Low: NewAmount(29.5), Close: NewAmount(30.8), Volume: NewAmount(800)},
	})
	assertNoError(t, err, "upsert stock data")
	if saved != 2 {
		t.Fatalf("expected 2 rows saved, got %d", saved)
	}

	_, err = core.UpsertStockData(ctx, "ALI", []StockData{
		{Date: "2024-03-02", Open: NewAmount(31), High: NewAmount(33), Low: NewAmount(30.5), Close: NewAmount(32.9), Volume: NewAmount(1500)},
	})
	assertNoError(t, err, "replace stock data")

	data, err := core.GetStockData(ctx, "ALI", "", "")
	assertNoError(t, err, "get stock data")
	if len(data) != 2 || data[0].Date != "2024-03-01" || data[1].Date != "2024-03-02" {
		t.Fatalf("expected ascending dates, got %+v", data)
	}
	assertAmount(t, data[1].Close, 32.9, "replaced close")

	ranged, err := core.GetStockData(ctx, "ALI", "2024-03-02", "2024-03-31")
	assertNoError(t, err, "ranged stock data")
	if len(ranged) != 1 {
		t.Errorf("expected 1 ranged row, got %d", len(ranged))
	}
}

func TestStockData_Validation(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	testStock(t, core, "ALI")

	if _, err := core.UpsertStockData(ctx, "BDO", []StockData{{Date: "2024-03-01"}}); !IsErrorCode(err, ErrCodeNotFound) {
		t.Errorf("expected not found for unknown symbol, got %v", err)
	}
	if _, err := core.UpsertStockData(ctx, "ALI", []StockData{{Date: ""}}); !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error for blank date, got %v", err)
	}
	if _, err := core.UpsertStockData(ctx, "ALI", []StockData{{Date: "2024-03-01", High: NewAmount(1), Low: NewAmount(2)}}); !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error for low above high, got %v", err)
	}
	data, err := core.GetStockData(ctx, "ALI", "", "")
	assertNoError(t, err, "get stock data")
	if len(data) != 0 {
		t.Errorf("rejected batch must not be saved, got %d rows", len(data))
	}
}
