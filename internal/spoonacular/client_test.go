package spoonacular

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRandomInjectsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("apiKey")
		_, _ = w.Write([]byte(`{"recipes":[{"id":1,"title":"Pasta"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key", WithRetryInterval(time.Millisecond))
	recipes, err := c.Random(t.Context(), 5, "Italian", "dinner")
	if err != nil {
		t.Fatalf("Random() error: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("apiKey = %q, want %q", gotKey, "secret-key")
	}
	if string(recipes) != `[{"id":1,"title":"Pasta"}]` {
		t.Errorf("recipes = %s, want raw array passthrough", recipes)
	}
}

func TestRandomForwardsTags(t *testing.T) {
	var gotTags string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTags = r.URL.Query().Get("include-tags")
		_, _ = w.Write([]byte(`{"recipes":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", WithRetryInterval(time.Millisecond))
	if _, err := c.Random(t.Context(), 5, "Italian,Thai", "dinner"); err != nil {
		t.Fatalf("Random() error: %v", err)
	}
	if gotTags != "Italian,Thai,dinner" {
		t.Errorf("include-tags = %q, want %q", gotTags, "Italian,Thai,dinner")
	}
}

func TestSearchRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":2}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", WithRetryInterval(time.Millisecond))
	results, err := c.Search(t.Context(), "pasta", 3, "")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
	if string(results) != `[{"id":2}]` {
		t.Errorf("results = %s, want raw array passthrough", results)
	}
}

func TestSearchDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", WithRetryInterval(time.Millisecond))
	if _, err := c.Search(t.Context(), "pasta", 3, ""); err == nil {
		t.Fatal("Search() error = nil, want upstream failure")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (4xx must not retry)", got)
	}
}

func TestSearchGivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", WithRetryInterval(time.Millisecond))
	if _, err := c.Search(t.Context(), "pasta", 3, ""); err == nil {
		t.Fatal("Search() error = nil, want upstream failure")
	}
	if got := calls.Load(); got != maxTries {
		t.Errorf("upstream calls = %d, want %d", got, maxTries)
	}
}

func TestInfoRejectsUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failure"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", WithRetryInterval(time.Millisecond))
	if _, err := c.Info(t.Context(), 42); err == nil {
		t.Fatal("Info() error = nil, want shape error")
	}
}

func TestInfoNoCacheConfigured(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"id":42,"title":"Soup"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", WithRetryInterval(time.Millisecond))
	for range 2 {
		if _, err := c.Info(t.Context(), 42); err != nil {
			t.Fatalf("Info() error: %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2 (no cache without redis)", got)
	}
}
