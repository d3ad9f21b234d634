package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"threadflow/internal/domain"
	"threadflow/internal/service/generation"
	"threadflow/internal/threads"
)

// memStore is an in-memory DraftStore for handler tests.
type memStore struct {
	drafts map[string]*domain.Draft
	order  []string
	seq    int
}

func newMemStore() *memStore {
	return &memStore{drafts: make(map[string]*domain.Draft)}
}

func (s *memStore) Create(_ context.Context, draft *domain.Draft) error {
	s.seq++
	if draft.ID == "" {
		draft.ID = fmt.Sprintf("draft-%d", s.seq)
	}
	if draft.Status == "" {
		draft.Status = domain.StatusPending
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}
	copied := *draft
	s.drafts[draft.ID] = &copied
	s.order = append(s.order, draft.ID)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*domain.Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	copied := *d
	return &copied, nil
}

func (s *memStore) ListByStatus(_ context.Context, status domain.Status, limit int) ([]domain.Draft, error) {
	var out []domain.Draft
	for _, id := range s.order {
		if s.drafts[id].Status == status {
			out = append(out, *s.drafts[id])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id string, status domain.Status, info *domain.PublishInfo) (*domain.Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	if !d.Status.CanTransitionTo(status) {
		return nil, &domain.InvalidTransitionError{From: d.Status, To: status}
	}
	d.Status = status
	if info != nil && info.ThreadID != "" {
		d.ThreadID = &info.ThreadID
		d.ThreadURL = &info.ThreadURL
	}
	copied := *d
	return &copied, nil
}

func (s *memStore) UpdateText(_ context.Context, id, text string) (*domain.Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	if d.Status == domain.StatusPublished {
		return nil, &domain.ValidationError{Message: "cannot edit a published post"}
	}
	d.Text = text
	copied := *d
	return &copied, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.drafts, id)
	return nil
}

// stubTarget scripts the publish target for publish-endpoint tests.
type stubTarget struct {
	err error
}

func (t *stubTarget) Publish(_ context.Context, _ string) (*threads.PublishedPost, error) {
	if t.err != nil {
		return nil, t.err
	}
	return &threads.PublishedPost{ThreadID: "thread-1", ThreadURL: "https://threads.net/t/1"}, nil
}

func (t *stubTarget) FetchRecent(_ context.Context, _ int) ([]threads.Post, error) {
	return nil, nil
}

func newTestMux(store domain.DraftStore, target generation.PublishTarget) *http.ServeMux {
	logger := slog.New(slog.DiscardHandler)
	orchestrator := generation.NewOrchestrator(generation.Config{
		Store:  store,
		Target: target,
		Logger: logger,
	})
	h := NewPostsHandler(store, orchestrator, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/pending", h.ListPending)
	mux.HandleFunc("GET /api/posts/{id}", h.GetPost)
	mux.HandleFunc("PUT /api/posts/{id}/text", h.UpdateText)
	mux.HandleFunc("POST /api/posts/{id}/approve", h.ApprovePost)
	mux.HandleFunc("POST /api/posts/{id}/reject", h.RejectPost)
	mux.HandleFunc("POST /api/posts/{id}/publish", h.PublishPost)
	return mux
}

func seed(t *testing.T, store *memStore, status domain.Status) *domain.Draft {
	t.Helper()
	draft := &domain.Draft{Text: "a reviewed post", Mode: domain.ModeBriefs, Status: status}
	if err := store.Create(context.Background(), draft); err != nil {
		t.Fatal(err)
	}
	return draft
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListPendingIncludesApproved(t *testing.T) {
	store := newMemStore()
	seed(t, store, domain.StatusPending)
	seed(t, store, domain.StatusApproved)
	seed(t, store, domain.StatusPublished)
	mux := newTestMux(store, nil)

	rec := do(t, mux, http.MethodGet, "/api/posts/pending", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Posts []domain.Draft `json:"posts"`
		Count int            `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 || len(resp.Posts) != 2 {
		t.Errorf("count = %d, want pending + approved = 2", resp.Count)
	}
}

func TestGetPostNotFound(t *testing.T) {
	mux := newTestMux(newMemStore(), nil)

	rec := do(t, mux, http.MethodGet, "/api/posts/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
}

func TestApproveLifecycle(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusPending)
	mux := newTestMux(store, nil)

	rec := do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/approve", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("approve status = %d, body %s", rec.Code, rec.Body)
	}

	// Re-approval succeeds.
	rec = do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/approve", "")
	if rec.Code != http.StatusOK {
		t.Errorf("re-approve status = %d, want 200", rec.Code)
	}

	// Rejecting an approved post is forbidden.
	rec = do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/reject", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("reject approved status = %d, want 400", rec.Code)
	}
}

func TestApproveRejectedPostForbidden(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusRejected)
	mux := newTestMux(store, nil)

	rec := do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/approve", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateTextPublishedImmutable(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusPublished)
	mux := newTestMux(store, nil)

	rec := do(t, mux, http.MethodPut, "/api/posts/"+draft.ID+"/text", `{"post_text":"new text"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateTextRequiresBody(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusPending)
	mux := newTestMux(store, nil)

	rec := do(t, mux, http.MethodPut, "/api/posts/"+draft.ID+"/text", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing post_text", rec.Code)
	}
}

func TestPublishEndpoint(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusApproved)
	mux := newTestMux(store, &stubTarget{})

	rec := do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/publish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Success   bool   `json:"success"`
		ThreadID  string `json:"thread_id"`
		ThreadURL string `json:"thread_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.ThreadID != "thread-1" {
		t.Errorf("resp = %+v", resp)
	}

	stored, _ := store.GetByID(context.Background(), draft.ID)
	if stored.Status != domain.StatusPublished {
		t.Errorf("stored status = %s, want published", stored.Status)
	}
}

func TestPublishEndpointUpstreamFailure(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusApproved)
	mux := newTestMux(store, &stubTarget{err: errors.New("api down")})

	rec := do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/publish", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	stored, _ := store.GetByID(context.Background(), draft.ID)
	if stored.Status != domain.StatusApproved {
		t.Errorf("status = %s, publish failure must leave status untouched", stored.Status)
	}
}

func TestPublishRejectedPostForbidden(t *testing.T) {
	store := newMemStore()
	draft := seed(t, store, domain.StatusRejected)
	mux := newTestMux(store, &stubTarget{})

	rec := do(t, mux, http.MethodPost, "/api/posts/"+draft.ID+"/publish", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
