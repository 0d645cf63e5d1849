// Package llm provides chat-completion backends behind a uniform capability.
// The backend is a closed enumeration selected by explicit configuration;
// nothing here inspects model-name substrings to pick a provider.
package llm

import (
	"context"
	"fmt"

	"github.com/finsight-ai/finsight/internal/chat"
)

// Kind names a supported backend.
type Kind string

const (
	KindOpenAI   Kind = "openai"
	KindDeepSeek Kind = "deepseek"
)

// Backend completes a conversation into a single text answer.
type Backend interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

// Config carries backend construction parameters.
type Config struct {
	Kind   Kind
	Model  string // defaults to the backend's standard model when empty
	APIKey string // defaults to the backend's environment variable when empty
}

// New constructs the backend named by cfg.Kind. An unknown kind is an error.
func New(cfg Config) (Backend, error) {
	switch cfg.Kind {
	case KindOpenAI:
		return newOpenAI(cfg)
	case KindDeepSeek:
		return newDeepSeek(cfg)
	default:
		return nil, fmt.Errorf("unknown llm backend kind %q", cfg.Kind)
	}
}

// filterSystem drops system-role messages. The reasoning-tier models served
// by both backends reject the system role.
func filterSystem(messages []chat.Message) []chat.Message {
	filtered := make([]chat.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == chat.RoleSystem {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}
