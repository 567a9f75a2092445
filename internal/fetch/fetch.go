// Package fetch retrieves reference pages and extracts their readable text.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultMaxContent caps extracted text per page.
	DefaultMaxContent = 5000

	// DefaultUserAgent identifies the client as a regular browser; many
	// sites reject unidentified fetch agents outright.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// mainContentSelectors are tried in order against the page's primary
// readable containers.
var mainContentSelectors = []string{
	"article", ".post-content", ".entry-content", "main",
	".article-body", ".main-content", "[role='main']",
}

var whitespaceRegex = regexp.MustCompile(`[ \t]+`)
var newlineRegex = regexp.MustCompile(`\n{3,}`)

// Extractor fetches a URL and extracts bounded readable text from it.
type Extractor struct {
	client     *http.Client
	userAgent  string
	maxContent int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithUserAgent overrides the client identity header.
func WithUserAgent(ua string) Option {
	return func(e *Extractor) { e.userAgent = ua }
}

// WithMaxContent overrides the extracted-text cap.
func WithMaxContent(n int) Option {
	return func(e *Extractor) { e.maxContent = n }
}

// NewExtractor creates an extractor with the given request timeout.
func NewExtractor(timeout time.Duration, opts ...Option) *Extractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	e := &Extractor{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent:  DefaultUserAgent,
		maxContent: DefaultMaxContent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches url and returns the text of its main readable containers
// in document order, capped at the extractor's content limit. A page with no
// matching containers yields empty text and no error; transport errors,
// non-success statuses and parse failures yield empty text and an error.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status code %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", url, err)
	}

	return e.extractText(doc), nil
}

// extractText walks the readable containers and concatenates their text,
// separated by newlines.
func (e *Extractor) extractText(doc *goquery.Document) string {
	// Remove common non-content elements before extraction.
	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript, .sidebar, .ad, .advertisement").Remove()

	var textBuilder strings.Builder
	selector := strings.Join(mainContentSelectors, ", ")
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	})

	text := whitespaceRegex.ReplaceAllString(textBuilder.String(), " ")
	text = newlineRegex.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if len(text) > e.maxContent {
		text = text[:e.maxContent]
	}

	return text
}
