package pipeline

import (
	"context"

	"enhancer/internal/core"
)

// ArticleStore reads and writes article records in the external store.
type ArticleStore interface {
	// List retrieves all articles. A failure here aborts the sweep.
	List(ctx context.Context) ([]core.Article, error)

	// Create persists a new enhanced record.
	Create(ctx context.Context, draft core.EnhancedDraft) (core.Article, error)
}

// ReferenceDiscoverer proposes candidate reference URLs for a title.
type ReferenceDiscoverer interface {
	// Discover returns ranked candidate URLs; empty on failure.
	Discover(ctx context.Context, title string) []string
}

// ContentExtractor fetches a URL and extracts bounded readable text.
type ContentExtractor interface {
	// Extract returns the page's readable text, capped in size. An error
	// or empty text means the candidate yielded no usable reference.
	Extract(ctx context.Context, url string) (string, error)
}

// Rewriter produces enhanced content from an original and reference texts.
type Rewriter interface {
	// Rewrite returns the enhanced text, or an error on capability failure.
	Rewrite(ctx context.Context, original string, references []string) (string, error)
}
