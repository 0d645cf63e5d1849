// Package config loads the application configuration from a YAML file with
// sensible defaults for every field. Secrets (API keys) stay in the
// environment and never appear in the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ScraperConfig tunes the content extractor.
type ScraperConfig struct {
	TimeoutSecs   int    `yaml:"timeout_secs"`
	RateLimitSecs int    `yaml:"rate_limit_secs"`
	UserAgent     string `yaml:"user_agent"`
}

// SearchConfig tunes the fallback web search.
type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

// EmbeddingConfig tunes the embedding generator.
type EmbeddingConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// LLMConfig selects the chat-completion backend. Backend is an explicit kind
// name, not something inferred from the model string.
type LLMConfig struct {
	Backend string `yaml:"backend"`
	Model   string `yaml:"model"`
}

// RetrievalConfig tunes answer-time retrieval.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// Config is the full application configuration.
type Config struct {
	DataDir       string          `yaml:"data_dir"`
	PreferredURLs string          `yaml:"preferred_urls"`
	Scraper       ScraperConfig   `yaml:"scraper"`
	Search        SearchConfig    `yaml:"search"`
	Embedding     EmbeddingConfig `yaml:"embedding"`
	LLM           LLMConfig       `yaml:"llm"`
	Retrieval     RetrievalConfig `yaml:"retrieval"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		DataDir:       "data",
		PreferredURLs: "preferred_urls.txt",
		Scraper: ScraperConfig{
			TimeoutSecs:   10,
			RateLimitSecs: 1,
		},
		Search:    SearchConfig{MaxResults: 5},
		Embedding: EmbeddingConfig{BatchSize: 0}, // 0 means the embedder default
		LLM:       LLMConfig{Backend: "openai"},
		Retrieval: RetrievalConfig{TopK: 1},
	}
}

// Load reads the configuration file at path, applying defaults for absent
// fields. A missing file yields the defaults without error; a malformed file
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Timeout returns the scraper timeout as a duration.
func (s ScraperConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// RateLimit returns the pre-fetch delay as a duration.
func (s ScraperConfig) RateLimit() time.Duration {
	return time.Duration(s.RateLimitSecs) * time.Second
}
