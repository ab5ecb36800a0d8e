package review

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiBaseURL    = "https://generativelanguage.googleapis.com"
	defaultGeminiAPIVersion = "v1beta"
)

func requestGemini(ctx context.Context, cfg Config, req Request) (Result, error) {
	clientConfig, err := geminiClientConfig(cfg)
	if err != nil {
		return Result{}, err
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return Result{}, fmt.Errorf("create gemini client failed: %w", err)
	}

	requestConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.2)),
		MaxOutputTokens: maxOutputTokens,
	}
	if req.SystemPrompt != "" {
		requestConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	response, err := client.Models.GenerateContent(ctx, cfg.Model, genai.Text(req.Prompt), requestConfig)
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate content failed: %w", err)
	}
	return Result{Model: strings.TrimSpace(response.ModelVersion), Content: response.Text()}, nil
}

func geminiClientConfig(cfg Config) (*genai.ClientConfig, error) {
	baseURL, apiVersion, err := splitGeminiBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: apiVersion,
		},
	}, nil
}

// splitGeminiBaseURL separates a trailing version segment ("v1", "v1beta")
// from the configured base url.
func splitGeminiBaseURL(endpoint string) (string, string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultGeminiBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", "", fmt.Errorf("invalid gemini endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", fmt.Errorf("invalid gemini endpoint scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", "", fmt.Errorf("invalid gemini endpoint host")
	}

	version := defaultGeminiAPIVersion
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if last := segments[len(segments)-1]; strings.HasPrefix(last, "v1") {
		version = last
		segments = segments[:len(segments)-1]
	}
	parsed.Path = strings.Join(segments, "/")
	if parsed.Path != "" {
		parsed.Path = "/" + parsed.Path
	}
	return strings.TrimRight(parsed.String(), "/") + "/", version, nil
}
