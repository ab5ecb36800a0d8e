package tradejournal

import (
	"context"
	"encoding/json"
	"fmt"

	"tradejournal/pkg/review"
)

const journalReviewSystemPrompt = `You are a trading coach reviewing a personal stock trading journal on the Philippine Stock Exchange.
Amounts are in PHP and already include broker commission, VAT, exchange fee and sales tax.
Review position sizing, cut-loss discipline and how profits were taken.
Reply in plain text with at most five short paragraphs. Do not give buy or sell calls on specific stocks.`

type journalDigest struct {
	Summary      *JournalSummary     `json:"summary"`
	Transactions []TradeTransaction  `json:"trade_transactions"`
	Wallet       []WalletTransaction `json:"wallet_transactions"`
}

// ReviewJournal asks the configured review provider to comment on a journal.
// It runs outside any ledger unit of work.
func (c *Core) ReviewJournal(ctx context.Context, journalID int64) (*JournalReview, error) {
	if c.reviewer == nil {
		return nil, NewError(ErrCodeUnsupported, "journal review is not configured")
	}
	prompt, err := c.buildReviewPrompt(ctx, journalID)
	if err != nil {
		return nil, err
	}

	result, err := c.reviewer.Review(ctx, review.Request{
		SystemPrompt: journalReviewSystemPrompt,
		Prompt:       prompt,
	})
	if err != nil {
		return nil, WrapError(ErrCodeInternal, "journal review failed", err)
	}
	c.logger.Info("journal reviewed", "journal_id", journalID, "provider", result.Provider, "model", result.Model)
	return &JournalReview{
		JournalID:   journalID,
		Provider:    result.Provider,
		Model:       result.Model,
		Review:      result.Content,
		GeneratedAt: c.nowRFC3339(),
	}, nil
}

func (c *Core) buildReviewPrompt(ctx context.Context, journalID int64) (string, error) {
	summary, err := c.GetJournalSummary(ctx, journalID)
	if err != nil {
		return "", err
	}
	trades, err := c.GetTradeTransactions(ctx, journalID, 0)
	if err != nil {
		return "", err
	}
	wallet, err := c.GetWalletTransactions(ctx, journalID)
	if err != nil {
		return "", err
	}
	digest, err := json.MarshalIndent(journalDigest{Summary: summary, Transactions: trades, Wallet: wallet}, "", "  ")
	if err != nil {
		return "", WrapError(ErrCodeInternal, "encode journal digest", err)
	}
	return fmt.Sprintf("Journal %q as of %s:\n%s", summary.JournalName, c.todayISO(), digest), nil
}
