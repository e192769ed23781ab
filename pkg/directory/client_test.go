package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const listingBody = `{
	"data": [
		{"id": "a/one:free", "name": "One", "context_length": 4096,
		 "pricing": {"prompt": "0", "completion": "0"}},
		{"id": "b/two", "name": "Two", "context_length": 8192,
		 "pricing": {"prompt": "0.001", "completion": "0.002"}}
	]
}`

func TestClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("expected path /models, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 0)
	defer c.Close()

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].ID != "a/one:free" {
		t.Errorf("unexpected first model id: %q", models[0].ID)
	}
}

func TestClient_ListModels_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	defer c.Close()

	if _, err := c.ListModels(context.Background()); err == nil {
		t.Fatal("expected error for 503 listing")
	}
}

func TestClient_ListModels_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	defer c.Close()

	if _, err := c.ListModels(context.Background()); err == nil {
		t.Fatal("expected error for malformed listing")
	}
}

func TestClient_ListEligible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	defer c.Close()

	eligible, err := c.ListEligible(context.Background(), nil)
	if err != nil {
		t.Fatalf("list eligible failed: %v", err)
	}
	if len(eligible) != 1 {
		t.Fatalf("expected 1 eligible provider, got %d", len(eligible))
	}
	rec, ok := eligible["a/one:free"]
	if !ok {
		t.Fatal("expected a/one:free to be eligible")
	}
	if rec.MaxOutputTokens != 2048 {
		t.Errorf("expected budget 2048, got %d", rec.MaxOutputTokens)
	}
}
