package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/finsight-ai/finsight/internal/chat"
)

// DefaultOpenAIModel is used when the configuration names no model.
const DefaultOpenAIModel = "o3-mini"

type openAIBackend struct {
	client openai.Client
	model  string
}

func newOpenAI(cfg Config) (Backend, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	// Without an explicit key, openai-go reads OPENAI_API_KEY itself.
	return &openAIBackend{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Complete sends the transcript as-is (minus system messages) and returns the
// first choice's text.
func (b *openAIBackend) Complete(ctx context.Context, messages []chat.Message) (string, error) {
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

// toParams converts transcript messages to the request union type.
func toParams(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case chat.RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}
