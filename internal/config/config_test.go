package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "preferred_urls.txt", cfg.PreferredURLs)
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout())
	assert.Equal(t, 1*time.Second, cfg.Scraper.RateLimit())
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "openai", cfg.LLM.Backend)
	assert.Equal(t, 1, cfg.Retrieval.TopK)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /var/lib/finsight
scraper:
  timeout_secs: 20
  rate_limit_secs: 2
llm:
  backend: deepseek
  model: deepseek-reasoner
retrieval:
  top_k: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/finsight", cfg.DataDir)
	assert.Equal(t, 20*time.Second, cfg.Scraper.Timeout())
	assert.Equal(t, 2*time.Second, cfg.Scraper.RateLimit())
	assert.Equal(t, "deepseek", cfg.LLM.Backend)
	assert.Equal(t, "deepseek-reasoner", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.Retrieval.TopK)

	// Untouched sections keep their defaults.
	assert.Equal(t, "preferred_urls.txt", cfg.PreferredURLs)
	assert.Equal(t, 5, cfg.Search.MaxResults)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
