package api

type addJournalPayload struct {
	Name       string `json:"name"`
	ExchangeID int64  `json:"exchange_id"`
}

type renameJournalPayload struct {
	Name string `json:"name"`
}

type addTradeTransactionPayload struct {
	StockID         int64   `json:"stock_id"`
	Action          string  `json:"action"`
	GrossPrice      float64 `json:"gross_price"`
	Shares          float64 `json:"shares"`
	GrossAmount     float64 `json:"gross_amount"`
	Fees            float64 `json:"fees"`
	NetAmount       float64 `json:"net_amount"`
	TransactionDate string  `json:"transaction_date"`
	Remarks         *string `json:"remarks"`
}

type addWalletTransactionPayload struct {
	Action          string  `json:"action"`
	GrossAmount     float64 `json:"gross_amount"`
	Fees            float64 `json:"fees"`
	NetAmount       float64 `json:"net_amount"`
	TransactionDate string  `json:"transaction_date"`
}

type addStockPayload struct {
	Symbol           string  `json:"symbol"`
	Name             *string `json:"name"`
	CompanyID        *string `json:"company_id"`
	SecuritySymbolID *string `json:"security_symbol_id"`
}

type stockDataPayload struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type buyCalculatorPayload struct {
	Price     string   `json:"price" validate:"required,numeric"`
	SellPrice *float64 `json:"sell_price" validate:"omitempty,gte=0"`
	Shares    float64  `json:"shares" validate:"gt=0"`
	Rate      *float64 `json:"rate" validate:"omitempty,gte=0,lt=1"`
	Year      int      `json:"year" validate:"omitempty,gte=1990"`
}

type sellCalculatorPayload struct {
	Price  float64  `json:"price" validate:"gt=0"`
	Shares float64  `json:"shares" validate:"gt=0"`
	Rate   *float64 `json:"rate" validate:"omitempty,gte=0,lt=1"`
	Year   int      `json:"year" validate:"omitempty,gte=1990"`
}

type riskRewardPayload struct {
	Entry   float64 `json:"entry" validate:"gt=0"`
	CutLoss float64 `json:"cut_loss" validate:"gt=0"`
	Target  float64 `json:"target" validate:"gt=0"`
}

type riskRewardResponse struct {
	Risk   string `json:"risk"`
	Reward string `json:"reward"`
	Ratio  string `json:"ratio"`
}

type stockDataResponse struct {
	Symbol string `json:"symbol"`
	Saved  int    `json:"saved"`
}
