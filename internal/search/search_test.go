package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestNewProvider(t *testing.T) {
	cases := []struct {
		providerType ProviderType
		wantName     string
	}{
		{ProviderTypeStatic, "Static"},
		{ProviderTypeDuckDuckGo, "DuckDuckGo"},
		{ProviderTypeMock, "Mock"},
	}

	for _, tc := range cases {
		provider, err := NewProvider(tc.providerType)
		if err != nil {
			t.Fatalf("NewProvider(%s) failed: %v", tc.providerType, err)
		}
		if provider.GetName() != tc.wantName {
			t.Errorf("Expected provider name %s, got %s", tc.wantName, provider.GetName())
		}
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider(ProviderType("google"))
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("Expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestStaticProviderCapsResults(t *testing.T) {
	provider := NewStaticProvider()

	results, err := provider.Search(context.Background(), "any title", Config{MaxResults: 1})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result with MaxResults=1, got %d", len(results))
	}

	results, err = provider.Search(context.Background(), "any title", Config{MaxResults: 10})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected the full static list of 2, got %d", len(results))
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, r.Rank)
		}
		if !strings.HasPrefix(r.URL, "https://example.com/blog/") {
			t.Errorf("Unexpected static URL: %s", r.URL)
		}
	}
}

func TestDiscovererCapsAndOrders(t *testing.T) {
	mock := NewMockProvider()
	mock.SetResults([]Result{
		{URL: "https://a.example/1", Rank: 1},
		{URL: "https://b.example/2", Rank: 2},
		{URL: "https://c.example/3", Rank: 3},
	})

	d := NewDiscoverer(mock, 2, 0)
	urls := d.Discover(context.Background(), "some title")

	if len(urls) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(urls))
	}
	if urls[0] != "https://a.example/1" || urls[1] != "https://b.example/2" {
		t.Errorf("Candidates out of rank order: %v", urls)
	}
}

func TestDiscovererSwallowsProviderError(t *testing.T) {
	mock := NewMockProvider()
	mock.SetError(ErrProviderUnavailable)

	d := NewDiscoverer(mock, 2, 0)
	urls := d.Discover(context.Background(), "some title")

	if len(urls) != 0 {
		t.Errorf("Expected empty candidates on provider failure, got %v", urls)
	}
}

func TestDiscovererSkipsEmptyURLs(t *testing.T) {
	mock := NewMockProvider()
	mock.SetResults([]Result{
		{URL: "", Rank: 1},
		{URL: "https://b.example/2", Rank: 2},
	})

	d := NewDiscoverer(mock, 2, 0)
	urls := d.Discover(context.Background(), "some title")

	if len(urls) != 1 || urls[0] != "https://b.example/2" {
		t.Errorf("Expected empty URLs skipped, got %v", urls)
	}
}

func TestDuckDuckGoExtractFinalURL(t *testing.T) {
	d := NewDuckDuckGoProvider()

	cases := []struct {
		in   string
		want string
	}{
		{"/l/?uddg=https%3A%2F%2Fexample.com%2Fpost&rut=abc", "https://example.com/post"},
		{"https://direct.example/page", "https://direct.example/page"},
		{"/l/?rut=abc", ""},
		{"javascript:void(0)", ""},
	}

	for _, tc := range cases {
		if got := d.extractFinalURL(tc.in); got != tc.want {
			t.Errorf("extractFinalURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDuckDuckGoParseSearchResults(t *testing.T) {
	html := `<html><body>
		<div class="result results_links">
			<a class="result__a" href="/l/?uddg=https%3A%2F%2Ffirst.example%2Fa&rut=x">First Result</a>
			<a class="result__snippet" href="#">Snippet one</a>
		</div>
		<div class="result results_links">
			<a class="result__a" href="https://second.example/b">Second Result</a>
		</div>
		<div class="result results_links">
			<a class="result__a" href="https://third.example/c">Third Result</a>
		</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to build document: %v", err)
	}

	d := NewDuckDuckGoProvider()
	results := d.parseSearchResults(doc, 2)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://first.example/a" {
		t.Errorf("Expected unwrapped redirect URL, got %s", results[0].URL)
	}
	if results[0].Title != "First Result" {
		t.Errorf("Expected title 'First Result', got %q", results[0].Title)
	}
	if results[0].Snippet != "Snippet one" {
		t.Errorf("Expected snippet, got %q", results[0].Snippet)
	}
	if results[1].URL != "https://second.example/b" {
		t.Errorf("Expected direct URL, got %s", results[1].URL)
	}
	if results[1].Rank != 2 {
		t.Errorf("Expected rank 2, got %d", results[1].Rank)
	}
}

func TestDuckDuckGoExtractDomain(t *testing.T) {
	d := NewDuckDuckGoProvider()
	if got := d.extractDomain("https://www.example.com/post"); got != "example.com" {
		t.Errorf("Expected example.com, got %s", got)
	}
}
