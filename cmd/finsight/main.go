// Package main provides the finsight CLI: knowledge-base ingestion,
// index-backed question answering, and live web research.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finsight-ai/finsight/internal/config"
	"github.com/finsight-ai/finsight/internal/docs"
	"github.com/finsight-ai/finsight/internal/embedding"
	"github.com/finsight-ai/finsight/internal/extract"
	"github.com/finsight-ai/finsight/internal/ingest"
	"github.com/finsight-ai/finsight/internal/llm"
	"github.com/finsight-ai/finsight/internal/rag"
	"github.com/finsight-ai/finsight/internal/research"
	"github.com/finsight-ai/finsight/internal/scout"
	"github.com/finsight-ai/finsight/internal/websearch"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Retrieval-grounded financial question answering",
	Long: `finsight maintains a local knowledge base of embedded documents and
answers questions either from that index or from live web sources.

Environment variables:
  OPENAI_API_KEY    OpenAI API key for embeddings and answers (required)
  DEEPSEEK_API_KEY  DeepSeek API key (required for the deepseek backend)`,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Embed documents and rebuild the knowledge base",
	Long: `Reads the given files and directories, embeds every document, and
replaces the persisted chunk store and vector index. The previous store and
index are overwritten wholesale; a batch with no valid documents leaves them
untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the ingested knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

var researchCmd = &cobra.Command{
	Use:   "research <question>",
	Short: "Answer a question from live web sources",
	Long: `Gathers grounding from the curated URL list first, falling back to a
general web search when no curated source is relevant, then generates an
answer and prints the sources that were used.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

var preferCmd = &cobra.Command{
	Use:   "prefer",
	Short: "Manage the curated URL list",
}

var preferAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Append a URL to the curated list",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreferAdd,
}

var preferListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the curated URL list",
	RunE:  runPreferList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "finsight.yaml", "configuration file")
	preferCmd.AddCommand(preferAddCmd, preferListCmd)
	rootCmd.AddCommand(ingestCmd, askCmd, researchCmd, preferCmd)
}

func main() {
	// Load .env if present (local development), ignore if missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	loader := docs.NewLoader(logger)
	documents, err := loader.Load(args)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	pipeline := ingest.NewPipeline(embedder, cfg.DataDir, logger)
	result, err := pipeline.Ingest(cmd.Context(), documents)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if !result.IndexReady {
		fmt.Println("No valid documents processed. Nothing to embed.")
		return nil
	}
	fmt.Printf("Ingested %d document(s) (%d skipped) in %s. Index ready.\n",
		result.Accepted, result.Skipped, result.Duration.Round(1e7))
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	engine := rag.NewEngine(embedder, backend, cfg.DataDir, cfg.Retrieval.TopK, logger)
	answer, err := engine.Answer(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger()

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	extractorOpts := []extract.Option{
		extract.WithTimeout(cfg.Scraper.Timeout()),
		extract.WithRateLimit(cfg.Scraper.RateLimit()),
		extract.WithLogger(logger),
	}
	if cfg.Scraper.UserAgent != "" {
		extractorOpts = append(extractorOpts, extract.WithUserAgent(cfg.Scraper.UserAgent))
	}
	extractor := extract.New(extractorOpts...)
	searcher := websearch.NewDuckDuckGo(&http.Client{Timeout: cfg.Scraper.Timeout()}, cfg.Scraper.UserAgent)
	prefs := scout.NewPreferredList(cfg.PreferredURLs)
	orchestrator := scout.NewOrchestrator(extractor, searcher, prefs, cfg.Search.MaxResults, logger)

	engine := research.NewEngine(orchestrator, backend, logger)
	answer, sources, err := engine.Respond(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	if len(sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range sources {
			if s.IconURL != "" {
				fmt.Printf("  %s (icon: %s)\n", s.URL, s.IconURL)
			} else {
				fmt.Printf("  %s\n", s.URL)
			}
		}
	}
	return nil
}

func runPreferAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := scout.NewPreferredList(cfg.PreferredURLs).Add(args[0]); err != nil {
		return err
	}
	fmt.Printf("Added %s\n", args[0])
	return nil
}

func runPreferList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	urls, err := scout.NewPreferredList(cfg.PreferredURLs).URLs()
	if err != nil {
		return err
	}
	for _, u := range urls {
		fmt.Println(u)
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("FINSIGHT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newEmbedder(cfg config.Config) (*embedding.Embedder, error) {
	client, err := embedding.NewClient()
	if err != nil {
		return nil, err
	}
	return embedding.NewEmbedder(client, cfg.Embedding.BatchSize), nil
}

func newBackend(cfg config.Config) (llm.Backend, error) {
	return llm.New(llm.Config{
		Kind:  llm.Kind(cfg.LLM.Backend),
		Model: cfg.LLM.Model,
	})
}
