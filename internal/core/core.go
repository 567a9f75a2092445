package core

import "time"

// Article represents a record in the external article store.
// Originals are created by an out-of-band ingestion step; enhanced records
// are created by this pipeline and carry a back-reference to their original.
type Article struct {
	ID                int64    `json:"id"`                  // Store-assigned identifier
	Title             string   `json:"title"`               // Article title
	Content           string   `json:"content"`             // Body text; enhanced records end with a citation block
	URL               string   `json:"url"`                 // Origin URL (empty for enhanced records)
	PublishedDate     string   `json:"published_date"`      // Original publication date (YYYY-MM-DD)
	OriginalSource    string   `json:"original_source"`     // Provenance label of the origin site
	References        []string `json:"references"`          // Source URLs consulted during enhancement
	IsUpdated         bool     `json:"is_updated"`          // True only for enhanced records
	OriginalArticleID *int64   `json:"original_article_id"` // ID of the source original (nil for originals)
}

// IsEnhanced reports whether the article is an enhancement result that
// back-references an original.
func (a Article) IsEnhanced() bool {
	return a.IsUpdated && a.OriginalArticleID != nil
}

// EnhancedDraft is the write payload for a new enhanced record.
type EnhancedDraft struct {
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	OriginalArticleID int64    `json:"original_article_id"`
	IsUpdated         bool     `json:"is_updated"`
	References        []string `json:"references"`
}

// SweepStats tracks the outcome of one full pass over the backlog.
type SweepStats struct {
	TotalArticles int // Articles returned by the store
	Eligible      int // Originals that passed the idempotency filter
	Processed     int // Enhanced records successfully created
	Skipped       int // Eligible originals with no usable references
	Failed        int // Eligible originals whose write failed

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
