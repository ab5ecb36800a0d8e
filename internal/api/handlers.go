package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tradejournal/pkg/tradejournal"
)

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getJournals(w http.ResponseWriter, r *http.Request) {
	result, err := h.core.GetJournals(r.Context())
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) addJournal(w http.ResponseWriter, r *http.Request) {
	var payload addJournalPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeMalformedMutation(w, err)
		return
	}
	result, err := h.core.AddJournal(r.Context(), tradejournal.AddJournalRequest{
		Name:       payload.Name,
		ExchangeID: payload.ExchangeID,
	})
	writeMutation(w, result, err)
}

func (h *handler) getJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.core.GetJournal(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) renameJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload renameJournalPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeMalformedMutation(w, err)
		return
	}
	result, err := h.core.RenameJournal(r.Context(), tradejournal.RenameJournalRequest{ID: id, Name: payload.Name})
	if tradejournal.IsErrorCode(err, tradejournal.ErrCodeNotFound) {
		writeErrorResponse(w, r, err)
		return
	}
	writeMutation(w, result, err)
}

func (h *handler) getJournalSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.core.GetJournalSummary(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getTrades(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	filter := tradejournal.TradeStatusFilter(strings.ToLower(r.URL.Query().Get("status")))
	switch filter {
	case tradejournal.TradesAll, tradejournal.TradesActive, tradejournal.TradesClosed:
	default:
		writeError(w, http.StatusBadRequest, "status must be active or closed")
		return
	}
	result, err := h.core.GetTrades(r.Context(), id, filter)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getTradeTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var stockID int64
	if raw := r.URL.Query().Get("stock_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid stock_id")
			return
		}
		stockID = parsed
	}
	result, err := h.core.GetTradeTransactions(r.Context(), id, stockID)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) addTradeTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload addTradeTransactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeMalformedMutation(w, err)
		return
	}
	result, err := h.core.AddTradeTransaction(r.Context(), tradejournal.AddTradeTransactionRequest{
		JournalID:       id,
		StockID:         payload.StockID,
		Action:          payload.Action,
		GrossPrice:      payload.GrossPrice,
		Shares:          payload.Shares,
		GrossAmount:     payload.GrossAmount,
		Fees:            payload.Fees,
		NetAmount:       payload.NetAmount,
		TransactionDate: payload.TransactionDate,
		Remarks:         payload.Remarks,
	})
	writeMutation(w, result, err)
}

func (h *handler) getWallet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.core.GetWallet(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "wallet not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getWalletTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.core.GetWalletTransactions(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) addWalletTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload addWalletTransactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeMalformedMutation(w, err)
		return
	}
	result, err := h.core.AddWalletTransaction(r.Context(), tradejournal.AddWalletTransactionRequest{
		JournalID:       id,
		Action:          payload.Action,
		GrossAmount:     payload.GrossAmount,
		Fees:            payload.Fees,
		NetAmount:       payload.NetAmount,
		TransactionDate: payload.TransactionDate,
	})
	writeMutation(w, result, err)
}

func (h *handler) reviewJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.core.ReviewJournal(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getStocks(w http.ResponseWriter, r *http.Request) {
	result, err := h.core.GetStocks(r.Context())
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) addStock(w http.ResponseWriter, r *http.Request) {
	var payload addStockPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.core.AddStock(r.Context(), tradejournal.Stock{
		Symbol:           payload.Symbol,
		Name:             payload.Name,
		CompanyID:        payload.CompanyID,
		SecuritySymbolID: payload.SecuritySymbolID,
	})
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getStockData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.core.GetStockData(r.Context(), chi.URLParam(r, "symbol"), query.Get("from"), query.Get("to"))
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) upsertStockData(w http.ResponseWriter, r *http.Request) {
	var payload []stockDataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	points := make([]tradejournal.StockData, 0, len(payload))
	for _, p := range payload {
		points = append(points, tradejournal.StockData{
			Date:   p.Date,
			Open:   tradejournal.NewAmount(p.Open),
			High:   tradejournal.NewAmount(p.High),
			Low:    tradejournal.NewAmount(p.Low),
			Close:  tradejournal.NewAmount(p.Close),
			Volume: tradejournal.NewAmount(p.Volume),
		})
	}
	saved, err := h.core.UpsertStockData(r.Context(), symbol, points)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stockDataResponse{Symbol: symbol, Saved: saved})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
