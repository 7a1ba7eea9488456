package metafetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestFetchOpenGraphTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!doctype html>
<html><head>
<title>Fallback Title</title>
<meta property="og:title" content="Weather Dashboard" />
<meta property="og:description" content="Live weather maps for your city." />
<meta property="og:image" content="https://example.com/shot.png" />
</head><body></body></html>`))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(zap.NewNop())

	draft, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if draft.Title != "Weather Dashboard" {
		t.Errorf("title: got %q", draft.Title)
	}
	if draft.Description != "Live weather maps for your city." {
		t.Errorf("description: got %q", draft.Description)
	}
	if len(draft.Images) != 1 || draft.Images[0] != "https://example.com/shot.png" {
		t.Errorf("images: got %v", draft.Images)
	}
	if draft.LiveURL != server.URL {
		t.Errorf("live url: got %q", draft.LiveURL)
	}
}

func TestFetchFallsBackToDocumentTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>  Plain Page  </title></head><body></body></html>`))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(zap.NewNop())

	draft, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if draft.Title != "Plain Page" {
		t.Errorf("expected trimmed document title, got %q", draft.Title)
	}
	if len(draft.Images) != 0 {
		t.Errorf("expected no images, got %v", draft.Images)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(zap.NewNop())

	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected fetch failure")
	}
}

func TestFetchRejectsRelativeURL(t *testing.T) {
	fetcher := NewFetcher(zap.NewNop())

	if _, err := fetcher.Fetch(context.Background(), "/not-absolute"); err == nil {
		t.Fatal("expected validation error")
	}
}
