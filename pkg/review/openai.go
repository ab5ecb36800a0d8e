package review

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

func requestOpenAI(ctx context.Context, cfg Config, req Request) (Result, error) {
	opts := []oaioption.RequestOption{oaioption.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, oaioption.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(maxOutputTokens),
	})
	if err != nil {
		return Result{}, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("openai chat completion returned no choices")
	}
	return Result{Model: resp.Model, Content: resp.Choices[0].Message.Content}, nil
}
