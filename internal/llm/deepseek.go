package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/finsight-ai/finsight/internal/chat"
)

const (
	// DeepSeekBaseURL is DeepSeek's OpenAI-compatible endpoint.
	DeepSeekBaseURL = "https://api.deepseek.com"

	// DefaultDeepSeekModel is used when the configuration names no model.
	DefaultDeepSeekModel = "deepseek-reasoner"
)

type deepSeekBackend struct {
	client openai.Client
	model  string
}

func newDeepSeek(cfg Config) (Backend, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultDeepSeekModel
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("DEEPSEEK_API_KEY")
	}

	return &deepSeekBackend{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(DeepSeekBaseURL),
		),
		model: model,
	}, nil
}

func (b *deepSeekBackend) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    b.model,
		Messages: toParams(filterSystem(messages)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
