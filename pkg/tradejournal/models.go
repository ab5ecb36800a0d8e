package tradejournal

// Journal status values.
const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
)

// Mutation result codes.
const (
	CodeCreated  = "201"
	CodeUpdated  = "200"
	CodeRejected = "400"
	CodeFailed   = "500"
)

// DefaultExchangeID is the Philippine Stock Exchange.
const DefaultExchangeID int64 = 1

// Journal is an accounting book for one exchange.
type Journal struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ExchangeID int64   `json:"exchange_id"`
	Status     string  `json:"status"`
	CreatedAt  *string `json:"created_at,omitempty"`
	UpdatedAt  *string `json:"updated_at,omitempty"`
}

// Stock is a listed security.
type Stock struct {
	ID               int64   `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             *string `json:"name"`
	CompanyID        *string `json:"company_id,omitempty"`
	SecuritySymbolID *string `json:"security_symbol_id,omitempty"`
}

// StockData is one end-of-day OHLCV record.
type StockData struct {
	Symbol string `json:"symbol"`
	Date   string `json:"date"`
	Open   Amount `json:"open"`
	High   Amount `json:"high"`
	Low    Amount `json:"low"`
	Close  Amount `json:"close"`
	Volume Amount `json:"volume"`
}

// Trade is the open or closed position lot of one stock in a journal.
type Trade struct {
	ID                   int64   `json:"id"`
	JournalID            int64   `json:"journal_id"`
	StockID              int64   `json:"stock_id"`
	Symbol               string  `json:"symbol,omitempty"`
	TransactionDateStart string  `json:"transaction_date_start"`
	TransactionDateEnd   *string `json:"transaction_date_end"`
	Type                 string  `json:"type"`
	Shares               Amount  `json:"shares"`
	BuyShares            Amount  `json:"buy_shares"`
	AvgBuyPrice          Amount  `json:"avg_buy_price"`
	SellShares           Amount  `json:"sell_shares"`
	AvgSellPrice         Amount  `json:"avg_sell_price"`
	Status               string  `json:"status"`
}

// TradeTransaction is an immutable trade event.
type TradeTransaction struct {
	ID              int64   `json:"id"`
	JournalID       int64   `json:"journal_id"`
	StockID         int64   `json:"stock_id"`
	TradeID         int64   `json:"trade_id"`
	Symbol          string  `json:"symbol,omitempty"`
	Action          string  `json:"action"`
	GrossPrice      Amount  `json:"gross_price"`
	Shares          Amount  `json:"shares"`
	GrossAmount     Amount  `json:"gross_amount"`
	Fees            Amount  `json:"fees"`
	NetAmount       Amount  `json:"net_amount"`
	TransactionDate string  `json:"transaction_date"`
	Remarks         *string `json:"remarks"`
	CreatedAt       *string `json:"created_at,omitempty"`
}

// Wallet is the cash balance of a journal.
type Wallet struct {
	ID        int64   `json:"id"`
	JournalID int64   `json:"journal_id"`
	Balance   Amount  `json:"balance"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// WalletTransaction is an immutable cash event.
type WalletTransaction struct {
	ID              int64   `json:"id"`
	JournalID       int64   `json:"journal_id"`
	WalletID        int64   `json:"wallet_id"`
	TransactionDate string  `json:"transaction_date"`
	Action          string  `json:"action"`
	GrossAmount     Amount  `json:"gross_amount"`
	Fees            Amount  `json:"fees"`
	NetAmount       Amount  `json:"net_amount"`
	CreatedAt       *string `json:"created_at,omitempty"`
}

// MutationResult is the outcome of a ledger mutation. On rejection Success
// is false, Code is "400" and ErrorCode names the reason.
type MutationResult struct {
	Code              string             `json:"code"`
	Success           bool               `json:"success"`
	Message           string             `json:"message"`
	ErrorCode         ErrorCode          `json:"error_code,omitempty"`
	Journal           *Journal           `json:"journal,omitempty"`
	Trade             *Trade             `json:"trade,omitempty"`
	TradeTransaction  *TradeTransaction  `json:"trade_transaction,omitempty"`
	Wallet            *Wallet            `json:"wallet,omitempty"`
	WalletTransaction *WalletTransaction `json:"wallet_transaction,omitempty"`
}

// AddJournalRequest defines inputs to create a journal.
type AddJournalRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	ExchangeID int64  `json:"exchange_id" validate:"gte=0"`
}

// RenameJournalRequest defines inputs to rename a journal.
type RenameJournalRequest struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required,max=100"`
}

// AddTradeTransactionRequest defines inputs to record a trade event.
// For BUY and SELL a zero NetAmount is derived from GrossPrice, Shares and
// the broker fee schedule.
type AddTradeTransactionRequest struct {
	JournalID       int64   `json:"journal_id" validate:"required,gt=0"`
	StockID         int64   `json:"stock_id" validate:"required,gt=0"`
	Action          string  `json:"action" validate:"required,oneof=BUY SELL STOCKDIVS IPO"`
	GrossPrice      float64 `json:"gross_price" validate:"finite,gte=0"`
	Shares          float64 `json:"shares" validate:"finite,gt=0"`
	GrossAmount     float64 `json:"gross_amount" validate:"finite,gte=0"`
	Fees            float64 `json:"fees" validate:"finite,gte=0"`
	NetAmount       float64 `json:"net_amount" validate:"finite,gte=0"`
	TransactionDate string  `json:"transaction_date"`
	Remarks         *string `json:"remarks" validate:"omitempty,max=500"`
}

// AddWalletTransactionRequest defines inputs to record a cash event.
// A zero NetAmount is derived as GrossAmount minus Fees for credits and
// GrossAmount plus Fees for withdrawals.
type AddWalletTransactionRequest struct {
	JournalID       int64   `json:"journal_id" validate:"required,gt=0"`
	TransactionDate string  `json:"transaction_date"`
	Action          string  `json:"action" validate:"required,oneof=DEPOSIT WITHDRAWAL CASHDIVS"`
	GrossAmount     float64 `json:"gross_amount" validate:"finite,gte=0"`
	Fees            float64 `json:"fees" validate:"finite,gte=0"`
	NetAmount       float64 `json:"net_amount" validate:"finite,gte=0"`
}

// TradeStatusFilter selects lots by lifecycle state.
type TradeStatusFilter string

const (
	TradesAll    TradeStatusFilter = ""
	TradesActive TradeStatusFilter = "active"
	TradesClosed TradeStatusFilter = "closed"
)

// JournalSummary aggregates the positions and cash of a journal.
type JournalSummary struct {
	JournalID      int64   `json:"journal_id"`
	JournalName    string  `json:"journal_name"`
	OpenPositions  int     `json:"open_positions"`
	OpenShares     Amount  `json:"open_shares"`
	TotalOpenCost  Amount  `json:"total_open_cost"`
	ClosedTrades   int     `json:"closed_trades"`
	RealizedProfit Amount  `json:"realized_profit"`
	WalletBalance  Amount  `json:"wallet_balance"`
	Trades         []Trade `json:"trades"`
	GeneratedAt    string  `json:"generated_at"`
}

// JournalReview is a model-written review of a journal.
type JournalReview struct {
	JournalID   int64  `json:"journal_id"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Review      string `json:"review"`
	GeneratedAt string `json:"generated_at"`
}
