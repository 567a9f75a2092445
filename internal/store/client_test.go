package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enhancer/internal/core"
)

func TestListDecodesArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/articles" {
			t.Errorf("Expected path /articles, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Original", "content": "Body", "url": "https://src.example/a", "is_updated": false, "original_article_id": null},
			{"id": 2, "title": "[UPDATED] Original", "content": "Enhanced", "is_updated": true, "original_article_id": 1, "references": ["https://ref.example/x"]}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	articles, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].OriginalArticleID != nil {
		t.Error("Original should have nil original_article_id")
	}
	if !articles[1].IsEnhanced() {
		t.Error("Second record should report as enhanced")
	}
	if *articles[1].OriginalArticleID != 1 {
		t.Errorf("Expected back-reference to 1, got %d", *articles[1].OriginalArticleID)
	}
	if len(articles[1].References) != 1 || articles[1].References[0] != "https://ref.example/x" {
		t.Errorf("Unexpected references: %v", articles[1].References)
	}
}

func TestListStoreUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.List(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
}

func TestListTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed before use to force a transport error

	client := NewClient(server.URL, 1*time.Second)
	_, err := client.List(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable on transport failure, got %v", err)
	}
}

func TestCreatePostsDraft(t *testing.T) {
	var received core.EnhancedDraft
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("Failed to decode draft: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "title": "[UPDATED] T", "content": "C", "is_updated": true, "original_article_id": 7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	draft := core.EnhancedDraft{
		Title:             "[UPDATED] T",
		Content:           "C",
		OriginalArticleID: 7,
		IsUpdated:         true,
		References:        []string{"https://ref.example/x"},
	}

	created, err := client.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID != 42 {
		t.Errorf("Expected created ID 42, got %d", created.ID)
	}
	if received.OriginalArticleID != 7 {
		t.Errorf("Expected posted original_article_id 7, got %d", received.OriginalArticleID)
	}
	if !received.IsUpdated {
		t.Error("Posted draft should carry is_updated=true")
	}
	if len(received.References) != 1 {
		t.Errorf("Expected 1 posted reference, got %d", len(received.References))
	}
}

func TestCreateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The title field is required."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Create(context.Background(), core.EnhancedDraft{})
	if !errors.Is(err, ErrStoreRejected) {
		t.Errorf("Expected ErrStoreRejected, got %v", err)
	}
}

func TestCreateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Create(context.Background(), core.EnhancedDraft{Title: "T"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
}
