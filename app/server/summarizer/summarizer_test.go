package summarizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sample = "Gophers dig complex burrows. A gopher burrow can stretch for " +
	"hundreds of feet underground. Weather rarely bothers them. The burrow " +
	"protects gophers from predators and weather alike. Some tunnels are " +
	"abandoned every season."

func TestFromText(t *testing.T) {
	sum := NewExtractive()

	digest, err := sum.FromText(context.Background(), sample, 2)
	if err != nil {
		t.Fatalf("from text: %v", err)
	}

	if digest.Title != "Gophers dig complex burrows" {
		t.Fatalf("title = %q", digest.Title)
	}
	if digest.Body != sample {
		t.Fatal("body should carry the full source text")
	}
	if digest.Summary == "" || len(digest.Summary) >= len(sample) {
		t.Fatalf("summary should be a strict extract, got %q", digest.Summary)
	}
	if !strings.Contains(sample, digest.Summary) &&
		!strings.Contains(digest.Summary, ".") {
		t.Fatalf("summary %q does not look extractive", digest.Summary)
	}

	found := false
	for _, k := range digest.Keywords {
		if strings.HasPrefix(k, "gopher") || strings.HasPrefix(k, "burrow") {
			found = true
		}
		if stopwords[k] {
			t.Fatalf("stopword %q leaked into keywords", k)
		}
	}
	if !found {
		t.Fatalf("expected a dominant word in keywords, got %v", digest.Keywords)
	}
}

func TestFromTextRejectsEmpty(t *testing.T) {
	sum := NewExtractive()
	if _, err := sum.FromText(context.Background(), "   ", 3); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Burrow Engineering</title>
<script>var secretToken = "donotindex";</script>
<style>.x { color: red; }</style></head>
<body><p>` + sample + `</p></body></html>`))
	}))
	defer srv.Close()

	sum := NewExtractive()
	digest, err := sum.FromURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("from url: %v", err)
	}

	if digest.Title != "Burrow Engineering" {
		t.Fatalf("title = %q", digest.Title)
	}
	if strings.Contains(digest.Body, "donotindex") || strings.Contains(digest.Body, "color") {
		t.Fatalf("script/style content leaked into body: %q", digest.Body)
	}
	for _, k := range digest.Keywords {
		if k == "secrettoken" || k == "donotindex" {
			t.Fatalf("script content leaked into keywords: %v", digest.Keywords)
		}
	}
}

func TestFromURLRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sum := NewExtractive()
	if _, err := sum.FromURL(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
