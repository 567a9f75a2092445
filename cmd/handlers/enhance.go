package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"enhancer/internal/config"
	"enhancer/internal/fetch"
	"enhancer/internal/pipeline"
	"enhancer/internal/rewrite"
	"enhancer/internal/search"
	"enhancer/internal/store"
)

// NewEnhanceCmd creates the enhance command, which runs one full sweep over
// the backlog of not-yet-enhanced articles.
func NewEnhanceCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "enhance",
		Short: "Run one enhancement sweep over the article backlog",
		Long: `Run one full pass over the article store: every original without an
existing enhanced record is rewritten against discovered reference sources
and saved back as a new enhanced record. The sweep terminates after the
last eligible article; there is no daemon mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p, err := buildPipeline(ctx, dryRun)
			if err != nil {
				return err
			}

			stats, err := p.Run(ctx)
			if err != nil {
				return fmt.Errorf("sweep aborted: %w", err)
			}

			fmt.Printf("Sweep complete: %d processed, %d skipped, %d failed (%d eligible of %d articles) in %s\n",
				stats.Processed, stats.Skipped, stats.Failed, stats.Eligible, stats.TotalArticles, stats.Duration.Round(10*time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log drafts instead of persisting them")

	return cmd
}

// buildPipeline wires the pipeline from configuration.
func buildPipeline(ctx context.Context, dryRun bool) (*pipeline.Pipeline, error) {
	cfg := config.Get()

	storeClient := store.NewClient(cfg.Store.BaseURL, config.GetDuration(cfg.Store.Timeout, 0))

	provider, err := search.NewProvider(search.ProviderType(cfg.Search.Provider))
	if err != nil {
		return nil, fmt.Errorf("failed to create search provider %q: %w", cfg.Search.Provider, err)
	}
	discoverer := search.NewDiscoverer(provider, cfg.Search.MaxResults, config.GetDuration(cfg.Search.RateLimit, 0))

	extractor := fetch.NewExtractor(
		config.GetDuration(cfg.Fetch.Timeout, 0),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithMaxContent(cfg.Fetch.MaxContent),
	)

	engine, err := rewrite.NewEngine(ctx, rewrite.Options{
		APIKey:      cfg.AI.Gemini.APIKey,
		Model:       cfg.AI.Gemini.Model,
		MaxTokens:   cfg.AI.Gemini.MaxTokens,
		Temperature: cfg.AI.Gemini.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rewrite engine: %w", err)
	}

	pipelineCfg := pipeline.DefaultConfig()
	pipelineCfg.MaxReferences = cfg.Pipeline.MaxReferences
	pipelineCfg.ArticleDelay = config.GetDuration(cfg.Pipeline.ArticleDelay, pipelineCfg.ArticleDelay)
	pipelineCfg.TitlePrefix = cfg.Pipeline.TitlePrefix
	pipelineCfg.DryRun = dryRun

	return pipeline.New(storeClient, discoverer, extractor, engine, pipelineCfg), nil
}
