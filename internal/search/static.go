package search

import "context"

// StaticProvider returns a fixed candidate list regardless of query.
//
// This is a placeholder policy, not a real search capability: it stands in
// where no search backend is configured, mirroring the behavior this
// pipeline was specified against. Production deployments should select the
// DuckDuckGo provider (or add a real search-provider adapter) instead.
type StaticProvider struct {
	urls []string
}

// NewStaticProvider creates the placeholder provider with its default
// candidate list.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		urls: []string{
			"https://example.com/blog/article1",
			"https://example.com/blog/article2",
		},
	}
}

// GetName returns the name of this provider
func (s *StaticProvider) GetName() string {
	return "Static"
}

// Search returns the fixed candidate list, capped at config.MaxResults.
func (s *StaticProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	max := config.MaxResults
	if max <= 0 || max > len(s.urls) {
		max = len(s.urls)
	}

	results := make([]Result, 0, max)
	for i, u := range s.urls {
		if i >= max {
			break
		}
		results = append(results, Result{
			URL:    u,
			Title:  query,
			Domain: "example.com",
			Source: "Static",
			Rank:   i + 1,
		})
	}

	return results, nil
}
