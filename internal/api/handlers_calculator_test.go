package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"tradejournal/pkg/fees"
)

func TestCalculateBuy(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doRequest(router, http.MethodPost, "/api/calculator/buy", map[string]any{
		"price": "10", "shares": 1000, "sell_price": 12, "year": 2024,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result fees.RoundTrip
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Buy.Fees.Equal(decimal.RequireFromString("29.5")) {
		t.Errorf("buy fees = %s, want 29.5", result.Buy.Fees)
	}
	if !result.Buy.NetAmount.Equal(decimal.RequireFromString("10029.5")) {
		t.Errorf("buy net = %s, want 10029.5", result.Buy.NetAmount)
	}
	if result.Sell == nil {
		t.Fatal("expected sell side")
	}
	want := fees.SellSummary(decimal.NewFromInt(12), decimal.NewFromInt(1000), fees.DefaultCommissionRate, 2024)
	if !result.Sell.NetAmount.Equal(want.NetAmount) {
		t.Errorf("sell net = %s, want %s", result.Sell.NetAmount, want.NetAmount)
	}
	if len(result.Targets) != len(fees.TargetPercents) {
		t.Errorf("expected %d targets, got %d", len(fees.TargetPercents), len(result.Targets))
	}
}

func TestCalculateBuyValidation(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()

	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"missing price", map[string]any{"shares": 10}, "price is required"},
		{"non numeric price", map[string]any{"price": "ten", "shares": 10}, "price must be numeric"},
		{"zero shares", map[string]any{"price": "10", "shares": 0}, "shares must be greater than 0"},
		{"rate too high", map[string]any{"price": "10", "shares": 10, "rate": 1.5}, "rate must be less than 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(router, http.MethodPost, "/api/calculator/buy", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			if result := parseJSON(rr); result["message"] != tt.message {
				t.Fatalf("expected %q, got %v", tt.message, result["message"])
			}
		})
	}
}

func TestCalculateSell(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doRequest(router, http.MethodPost, "/api/calculator/sell", map[string]any{
		"price": 12, "shares": 1000, "year": 2017,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result fees.OrderSummary
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := fees.SellSummary(decimal.NewFromInt(12), decimal.NewFromInt(1000), fees.DefaultCommissionRate, 2017)
	if !result.Fees.Equal(want.Fees) || !result.NetAmount.Equal(want.NetAmount) {
		t.Errorf("unexpected sell summary %+v, want %+v", result, want)
	}
}

func TestCalculateRiskReward(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doRequest(router, http.MethodPost, "/api/calculator/risk-reward", map[string]any{
		"entry": 10, "cut_loss": 9, "target": 12,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	result := parseJSON(rr)
	if result["risk"] != "-10.00" || result["reward"] != "20.00" || result["ratio"] != "2.00" {
		t.Fatalf("unexpected risk/reward: %v", result)
	}

	rr = doRequest(router, http.MethodPost, "/api/calculator/risk-reward", map[string]any{"entry": 10})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing prices, got %d", rr.Code)
	}
}
