// Package review sends a journal digest to a hosted language model and
// returns its written review. Providers are selected by name: gemini
// (google.golang.org/genai), openai (openai-go) and anthropic
// (anthropic-sdk-go).
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const maxOutputTokens = 2048

// ErrNotConfigured is returned when no provider has been configured.
var ErrNotConfigured = errors.New("review provider is not configured")

// Config selects and configures a provider.
type Config struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
}

// Request is one review prompt.
type Request struct {
	SystemPrompt string
	Prompt       string
}

// Result is the text returned by a provider.
type Result struct {
	Provider string
	Model    string
	Content  string
}

// Provider produces a review for a prompt.
type Provider interface {
	Name() string
	Review(ctx context.Context, req Request) (Result, error)
}

type completionFunc func(ctx context.Context, cfg Config, req Request) (Result, error)

var (
	geminiCompletion    completionFunc = requestGemini
	openAICompletion    completionFunc = requestOpenAI
	anthropicCompletion completionFunc = requestAnthropic
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// New returns the provider named by cfg.Provider. An empty provider name
// yields ErrNotConfigured.
func New(cfg Config, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Provider == "" {
		return nil, ErrNotConfigured
	}

	var complete completionFunc
	switch cfg.Provider {
	case ProviderGemini:
		complete = geminiCompletion
	case ProviderOpenAI:
		complete = openAICompletion
	case ProviderAnthropic:
		complete = anthropicCompletion
	default:
		return nil, fmt.Errorf("unknown review provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is required", cfg.Provider)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	return &provider{cfg: cfg, logger: logger, complete: complete}, nil
}

type provider struct {
	cfg      Config
	logger   *slog.Logger
	complete completionFunc
}

func (p *provider) Name() string { return p.cfg.Provider }

func (p *provider) Review(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Result{}, errors.New("review prompt is empty")
	}
	p.logger.Debug("review request prompt",
		"provider", p.cfg.Provider,
		"model", p.cfg.Model,
		"system_prompt", req.SystemPrompt,
		"prompt", req.Prompt,
	)

	result, err := p.complete(ctx, p.cfg, req)
	if err != nil {
		p.logger.Warn("review request failed", "provider", p.cfg.Provider, "model", p.cfg.Model, "err", err)
		return Result{}, err
	}
	result.Content = strings.TrimSpace(result.Content)
	if result.Content == "" {
		return Result{}, fmt.Errorf("%s: review content is empty", p.cfg.Provider)
	}
	if strings.TrimSpace(result.Model) == "" {
		result.Model = p.cfg.Model
	}
	result.Provider = p.cfg.Provider
	return result, nil
}
