package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"tradejournal/pkg/tradejournal"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *tradejournal.Core) http.Handler {
	logger := core.Logger()
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLoggingMiddleware(logger))
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core, validate: newPayloadValidator(), now: time.Now}

	r.Get("/api/health", h.health)

	// Journals
	r.Route("/api/journals", func(r chi.Router) {
		r.Get("/", h.getJournals)
		r.Post("/", h.addJournal)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getJournal)
			r.Put("/", h.renameJournal)
			r.Get("/summary", h.getJournalSummary)
			r.Get("/trades", h.getTrades)
			r.Get("/trade-transactions", h.getTradeTransactions)
			r.Post("/trade-transactions", h.addTradeTransaction)
			r.Get("/wallet", h.getWallet)
			r.Get("/wallet-transactions", h.getWalletTransactions)
			r.Post("/wallet-transactions", h.addWalletTransaction)
			r.Post("/review", h.reviewJournal)
		})
	})

	// Stocks
	r.Get("/api/stocks", h.getStocks)
	r.Post("/api/stocks", h.addStock)
	r.Get("/api/stocks/{symbol}/data", h.getStockData)
	r.Post("/api/stocks/{symbol}/data", h.upsertStockData)

	// Calculator
	r.Post("/api/calculator/buy", h.calculateBuy)
	r.Post("/api/calculator/sell", h.calculateSell)
	r.Post("/api/calculator/risk-reward", h.calculateRiskReward)

	return r
}

type handler struct {
	core     *tradejournal.Core
	validate *validator.Validate
	now      func() time.Time
}

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
