// Package embedding generates dense vector representations of text through
// the OpenAI embeddings API.
package embedding

import (
	"fmt"
	"os"

	"github.com/openai/openai-go"
)

// Client wraps the OpenAI client for embedding generation. It is created once
// at process startup and shared; it is read-only after construction.
type Client struct {
	client *openai.Client
}

// NewClient creates a new OpenAI client for embedding generation. It requires
// OPENAI_API_KEY in the environment and returns an error if it is not set.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	// openai-go reads OPENAI_API_KEY from the environment itself.
	client := openai.NewClient()

	return &Client{client: &client}, nil
}

// Client returns the underlying OpenAI client for use by other packages.
func (c *Client) Client() *openai.Client {
	return c.client
}
