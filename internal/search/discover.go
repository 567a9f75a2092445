package search

import (
	"context"
	"time"

	"enhancer/internal/logger"
)

// Discoverer turns an article title into a ranked list of candidate
// reference URLs using the configured provider. Provider failures are
// non-fatal: they yield an empty candidate list so a sweep can continue.
type Discoverer struct {
	provider   Provider
	maxResults int
	rateLimit  time.Duration
}

// NewDiscoverer wraps a provider with discovery policy.
func NewDiscoverer(provider Provider, maxResults int, rateLimit time.Duration) *Discoverer {
	if maxResults <= 0 {
		maxResults = 2
	}
	return &Discoverer{
		provider:   provider,
		maxResults: maxResults,
		rateLimit:  rateLimit,
	}
}

// Discover returns up to maxResults candidate URLs for the given title,
// in provider rank order. Returns an empty slice on provider failure.
func (d *Discoverer) Discover(ctx context.Context, title string) []string {
	results, err := d.provider.Search(ctx, title, Config{
		MaxResults: d.maxResults,
		RateLimit:  d.rateLimit,
	})
	if err != nil {
		logger.Warn("reference discovery failed", "provider", d.provider.GetName(), "title", title, "error", err.Error())
		return nil
	}

	urls := make([]string, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
		if len(urls) >= d.maxResults {
			break
		}
	}

	return urls
}
