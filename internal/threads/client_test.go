package threads

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	client.apiURL = server.URL
	return client
}

func TestPublishRejectsOversizeBeforeNetwork(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s; oversize posts must be rejected locally", r.URL.Path)
	}))

	_, err := client.Publish(context.Background(), strings.Repeat("a", 501))
	if err == nil {
		t.Fatal("expected error for post over 500 characters")
	}
	if !strings.Contains(err.Error(), "max 500") {
		t.Errorf("error = %v, want length rejection", err)
	}
}

func TestPublishRejectsEmpty(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty posts must not reach the network")
	}))

	if _, err := client.Publish(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty post")
	}
}

func TestPublishFlow(t *testing.T) {
	var steps []string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		steps = append(steps, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/me":
			fmt.Fprint(w, `{"id":"user-1"}`)
		case r.URL.Path == "/user-1/threads" && r.Method == http.MethodPost:
			if got := r.FormValue("media_type"); got != "TEXT" {
				t.Errorf("media_type = %q, want TEXT", got)
			}
			fmt.Fprint(w, `{"id":"container-9"}`)
		case r.URL.Path == "/user-1/threads_publish":
			if got := r.FormValue("creation_id"); got != "container-9" {
				t.Errorf("creation_id = %q, want container-9", got)
			}
			fmt.Fprint(w, `{"id":"thread-7"}`)
		case r.URL.Path == "/thread-7":
			fmt.Fprint(w, `{"permalink":"https://threads.net/t/abc"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	post, err := client.Publish(context.Background(), "hello threads")
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if post.ThreadID != "thread-7" || post.ThreadURL != "https://threads.net/t/abc" {
		t.Errorf("post = %+v", post)
	}

	want := []string{
		"GET /me",
		"POST /user-1/threads",
		"POST /user-1/threads_publish",
		"GET /thread-7",
	}
	if len(steps) != len(want) {
		t.Fatalf("steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, steps[i], want[i])
		}
	}
}

func TestPublishSurvivesPermalinkFailure(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/me":
			fmt.Fprint(w, `{"id":"user-1"}`)
		case "/user-1/threads":
			fmt.Fprint(w, `{"id":"c"}`)
		case "/user-1/threads_publish":
			fmt.Fprint(w, `{"id":"thread-7"}`)
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))

	post, err := client.Publish(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Publish() error: %v; the permalink lookup is best effort", err)
	}
	if post.ThreadID != "thread-7" || post.ThreadURL != "" {
		t.Errorf("post = %+v, want thread id without url", post)
	}
}

func TestFetchRecentPagination(t *testing.T) {
	page := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/me" {
			fmt.Fprint(w, `{"id":"user-1"}`)
			return
		}
		page++
		switch page {
		case 1:
			if r.URL.Query().Get("after") != "" {
				t.Error("first page must not carry a cursor")
			}
			fmt.Fprint(w, `{
				"data": [
					{"id":"1","text":"first","timestamp":"2026-08-30T10:00:00+0000"},
					{"id":"2","text":"","timestamp":"2026-08-30T09:00:00+0000"},
					{"id":"3","text":"third","timestamp":"2026-08-30T08:00:00+0000"}
				],
				"paging": {"cursors":{"after":"cur-1"},"next":"https://next"}
			}`)
		case 2:
			if got := r.URL.Query().Get("after"); got != "cur-1" {
				t.Errorf("cursor = %q, want cur-1", got)
			}
			fmt.Fprint(w, `{
				"data": [{"id":"4","text":"fourth","timestamp":"2026-08-29T10:00:00+0000"}],
				"paging": {}
			}`)
		default:
			t.Error("pagination should stop when the page limit is reached")
		}
	}))

	posts, err := client.FetchRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchRecent() error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	// Textless posts are skipped without counting toward the limit.
	if posts[0].Text != "first" || posts[1].Text != "third" || posts[2].Text != "fourth" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestFetchRecentRequiresPositiveLimit(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	if _, err := client.FetchRecent(context.Background(), 0); err == nil {
		t.Fatal("expected error for non-positive limit")
	}
}
