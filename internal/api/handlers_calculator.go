package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"tradejournal/pkg/fees"
)

func (h *handler) calculateBuy(w http.ResponseWriter, r *http.Request) {
	var payload buyCalculatorPayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}
	in := fees.RoundTripInput{
		BuyPrice: payload.Price,
		Shares:   decimal.NewFromFloat(payload.Shares),
		Rate:     h.rate(payload.Rate),
		Year:     h.year(payload.Year),
	}
	if payload.SellPrice != nil {
		in.SellPrice = decimal.NewFromFloat(*payload.SellPrice)
	}
	result, err := fees.ComputeRoundTrip(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "price is invalid")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) calculateSell(w http.ResponseWriter, r *http.Request) {
	var payload sellCalculatorPayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}
	result := fees.SellSummary(
		decimal.NewFromFloat(payload.Price),
		decimal.NewFromFloat(payload.Shares),
		h.rate(payload.Rate),
		h.year(payload.Year),
	)
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) calculateRiskReward(w http.ResponseWriter, r *http.Request) {
	var payload riskRewardPayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}
	entry := decimal.NewFromFloat(payload.Entry)
	risk := fees.Risk(entry, decimal.NewFromFloat(payload.CutLoss))
	reward := fees.Reward(entry, decimal.NewFromFloat(payload.Target))
	writeJSON(w, http.StatusOK, riskRewardResponse{
		Risk:   risk.StringFixed(2),
		Reward: reward.StringFixed(2),
		Ratio:  fees.RiskRewardRatio(risk, reward).StringFixed(2),
	})
}

func (h *handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func (h *handler) rate(override *float64) decimal.Decimal {
	if override != nil {
		return decimal.NewFromFloat(*override)
	}
	return h.core.CommissionRate()
}

func (h *handler) year(override int) int {
	if override > 0 {
		return override
	}
	return h.now().Year()
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
