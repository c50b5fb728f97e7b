package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/supabase"
)

// fakeStore is a minimal in-memory stand-in for the record store: one posts
// record, field-merge on PATCH, representation returned on every write.
type fakeStore struct {
	mu      sync.Mutex
	record  map[string]interface{}
	queries []string
}

func (f *fakeStore) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.queries = append(f.queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]map[string]interface{}{f.record})
		case http.MethodPatch:
			var patch map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			for k, v := range patch {
				f.record[k] = v
			}
			json.NewEncoder(w).Encode([]map[string]interface{}{f.record})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newTestRepo(t *testing.T, store *fakeStore) (PostRepository, func()) {
	t.Helper()
	server := httptest.NewServer(store.handler())
	repo := NewPostRepository(supabase.New(server.URL, "test-key"))
	return repo, server.Close
}

func TestListDueSendsDueFilter(t *testing.T) {
	store := &fakeStore{record: map[string]interface{}{
		"id": "p1", "status": "scheduled", "content": "Hello", "platform": "telegram",
	}}
	repo, done := newTestRepo(t, store)
	defer done()

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	posts, err := repo.ListDue(context.Background(), now)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "p1" {
		t.Fatalf("unexpected posts: %+v", posts)
	}

	if len(store.queries) != 1 {
		t.Fatalf("expected one store call, got %d", len(store.queries))
	}
	query := store.queries[0]
	for _, want := range []string{"status=eq.scheduled", "scheduled_at=lte.2026-02-01T12%3A00%3A00Z", "order=scheduled_at.asc"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
}

func TestMarkPublishedPatchIsIdempotent(t *testing.T) {
	store := &fakeStore{record: map[string]interface{}{
		"id": "p1", "status": "scheduled",
	}}
	repo, done := newTestRepo(t, store)
	defer done()

	publishedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.MarkPublished(context.Background(), "p1", publishedAt, "42"); err != nil {
		t.Fatalf("first MarkPublished failed: %v", err)
	}
	first := snapshot(store)

	if err := repo.MarkPublished(context.Background(), "p1", publishedAt, "42"); err != nil {
		t.Fatalf("second MarkPublished failed: %v", err)
	}
	second := snapshot(store)

	if first["status"] != models.PostStatusPublished {
		t.Fatalf("expected published status, got %v", first["status"])
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("field %s changed between identical patches: %v -> %v", k, v, second[k])
		}
	}
}

func TestMarkFailedPatchesStatusOnly(t *testing.T) {
	store := &fakeStore{record: map[string]interface{}{
		"id": "p1", "status": "scheduled", "content": "Hello",
	}}
	repo, done := newTestRepo(t, store)
	defer done()

	if err := repo.MarkFailed(context.Background(), "p1"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	record := snapshot(store)
	if record["status"] != models.PostStatusFailed {
		t.Fatalf("expected failed status, got %v", record["status"])
	}
	if _, ok := record["published_at"]; ok {
		t.Fatal("failed post must not carry published_at")
	}
	if record["content"] != "Hello" {
		t.Fatal("patch must not clobber untouched fields")
	}
}

func snapshot(store *fakeStore) map[string]interface{} {
	store.mu.Lock()
	defer store.mu.Unlock()
	out := make(map[string]interface{}, len(store.record))
	for k, v := range store.record {
		out[k] = v
	}
	return out
}
