// Package pipeline orchestrates one sweep of the article enhancement flow:
// backlog fetch, idempotency filtering, and per-article reference discovery,
// extraction, rewriting, citation assembly and persistence.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"enhancer/internal/citations"
	"enhancer/internal/core"
	"enhancer/internal/logger"
)

// Config holds pipeline configuration
type Config struct {
	// MaxReferences caps accepted reference texts per article.
	MaxReferences int

	// ArticleDelay paces processing between articles to respect rate
	// limits of scraping targets and the generative capability.
	ArticleDelay time.Duration

	// TitlePrefix marks enhanced record titles.
	TitlePrefix string

	// DryRun logs drafts instead of persisting them.
	DryRun bool
}

// DefaultConfig returns the reference pipeline behavior.
func DefaultConfig() Config {
	return Config{
		MaxReferences: 2,
		ArticleDelay:  2 * time.Second,
		TitlePrefix:   "[UPDATED] ",
	}
}

// Pipeline sequences the enhancement stages over the backlog with a single
// logical worker. All stages block; the inter-article pause is the only
// concurrency control.
type Pipeline struct {
	store      ArticleStore
	discoverer ReferenceDiscoverer
	extractor  ContentExtractor
	rewriter   Rewriter
	config     Config
}

// New creates a pipeline with all dependencies.
func New(store ArticleStore, discoverer ReferenceDiscoverer, extractor ContentExtractor, rewriter Rewriter, config Config) *Pipeline {
	if config.MaxReferences <= 0 {
		config.MaxReferences = 2
	}
	if config.TitlePrefix == "" {
		config.TitlePrefix = "[UPDATED] "
	}
	return &Pipeline{
		store:      store,
		discoverer: discoverer,
		extractor:  extractor,
		rewriter:   rewriter,
		config:     config,
	}
}

// Run executes one full sweep over the backlog. Only a backlog-fetch
// failure aborts the run; every other failure is isolated to its article.
// A canceled context stops the sweep before the next article, never mid-way
// through one.
func (p *Pipeline) Run(ctx context.Context) (core.SweepStats, error) {
	sweepID := uuid.NewString()
	stats := core.SweepStats{StartTime: time.Now().UTC()}

	logger.Info("starting article enhancement sweep", "sweep_id", sweepID)

	articles, err := p.store.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch backlog: %w", err)
	}
	stats.TotalArticles = len(articles)

	backlog := EligibleArticles(articles)
	stats.Eligible = len(backlog)
	logger.Info("backlog filtered", "sweep_id", sweepID, "total", stats.TotalArticles, "eligible", stats.Eligible)

	for i, article := range backlog {
		if err := ctx.Err(); err != nil {
			p.finish(sweepID, &stats)
			return stats, err
		}

		p.processArticle(ctx, sweepID, article, &stats)

		// Pace between articles; the last one needs no trailing pause.
		if i < len(backlog)-1 && p.config.ArticleDelay > 0 {
			select {
			case <-time.After(p.config.ArticleDelay):
			case <-ctx.Done():
				p.finish(sweepID, &stats)
				return stats, ctx.Err()
			}
		}
	}

	p.finish(sweepID, &stats)
	return stats, nil
}

// EligibleArticles selects originals that still need enhancement. An
// original is eligible iff its own flag is unset AND no enhanced record
// back-references it; checking the back-reference is what makes repeated
// sweeps idempotent, since nothing ever flips the original's flag.
func EligibleArticles(articles []core.Article) []core.Article {
	enhanced := make(map[int64]bool)
	for _, a := range articles {
		if a.IsEnhanced() {
			enhanced[*a.OriginalArticleID] = true
		}
	}

	var backlog []core.Article
	for _, a := range articles {
		if !a.IsUpdated && !enhanced[a.ID] {
			backlog = append(backlog, a)
		}
	}
	return backlog
}

// processArticle runs the per-article stages, updating stats. Failures are
// logged and never propagate past the article.
func (p *Pipeline) processArticle(ctx context.Context, sweepID string, article core.Article, stats *core.SweepStats) {
	logger.Info("processing article", "sweep_id", sweepID, "article_id", article.ID, "title", article.Title)

	candidates := p.discoverer.Discover(ctx, article.Title)

	var refTexts []string
	var refURLs []string
	for _, candidate := range candidates {
		if len(refTexts) >= p.config.MaxReferences {
			break
		}
		text, err := p.extractor.Extract(ctx, candidate)
		if err != nil {
			logger.Warn("reference extraction failed", "sweep_id", sweepID, "article_id", article.ID, "url", candidate, "error", err.Error())
			continue
		}
		if text == "" {
			logger.Debug("reference yielded no text", "sweep_id", sweepID, "article_id", article.ID, "url", candidate)
			continue
		}
		refTexts = append(refTexts, text)
		refURLs = append(refURLs, candidate)
	}

	if len(refTexts) == 0 {
		logger.Warn("no usable references found, skipping article", "sweep_id", sweepID, "article_id", article.ID, "title", article.Title)
		stats.Skipped++
		return
	}

	enhanced, err := p.rewriter.Rewrite(ctx, article.Content, refTexts)
	if err != nil {
		// Fail open: record the article with its original content rather
		// than losing the run's extraction work.
		logger.Warn("rewrite failed, falling back to original content", "sweep_id", sweepID, "article_id", article.ID, "error", err.Error())
		enhanced = article.Content
	}

	draft := core.EnhancedDraft{
		Title:             p.config.TitlePrefix + article.Title,
		Content:           citations.Assemble(enhanced, refURLs),
		OriginalArticleID: article.ID,
		IsUpdated:         true,
		References:        refURLs,
	}

	if p.config.DryRun {
		logger.Info("dry run, draft not persisted", "sweep_id", sweepID, "article_id", article.ID, "title", draft.Title, "references", len(draft.References))
		stats.Processed++
		return
	}

	created, err := p.store.Create(ctx, draft)
	if err != nil {
		logger.Error("failed to persist enhanced article", err, "sweep_id", sweepID, "article_id", article.ID, "title", article.Title)
		stats.Failed++
		return
	}

	logger.Info("article enhanced and saved", "sweep_id", sweepID, "article_id", article.ID, "enhanced_id", created.ID, "title", created.Title)
	stats.Processed++
}

// finish stamps the stats and logs the completion banner.
func (p *Pipeline) finish(sweepID string, stats *core.SweepStats) {
	stats.EndTime = time.Now().UTC()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Info("sweep completed",
		"sweep_id", sweepID,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"eligible", stats.Eligible,
		"duration", stats.Duration.String(),
	)
}
