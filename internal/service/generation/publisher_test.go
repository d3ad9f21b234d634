package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"threadflow/internal/domain"
)

func seedDraft(t *testing.T, store *fakeStore, status domain.Status, text string) *domain.Draft {
	t.Helper()
	draft := &domain.Draft{Text: text, Mode: domain.ModeBriefs, Status: domain.StatusPending}
	if err := store.Create(context.Background(), draft); err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	if status != domain.StatusPending {
		if _, err := store.UpdateStatus(context.Background(), draft.ID, status, nil); err != nil {
			t.Fatalf("seed transition to %s: %v", status, err)
		}
	}
	return draft
}

func TestPublishDraft(t *testing.T) {
	store := newFakeStore()
	target := &fakeTarget{}
	o := newTestOrchestrator(&scriptedProvider{}, store, target, nil)

	draft := seedDraft(t, store, domain.StatusApproved, "an approved post")

	result, err := o.PublishDraft(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("PublishDraft() error: %v", err)
	}
	if !result.Success || result.ThreadID == "" || result.ThreadURL == "" {
		t.Errorf("result = %+v, want success with thread id and url", result)
	}

	stored, _ := store.GetByID(context.Background(), draft.ID)
	if stored.Status != domain.StatusPublished {
		t.Errorf("stored status = %s, want published", stored.Status)
	}
	if stored.ThreadID == nil || stored.PublishedAt == nil {
		t.Error("publish should stamp thread id and published_at")
	}
}

func TestPublishPendingDraftAllowed(t *testing.T) {
	store := newFakeStore()
	o := newTestOrchestrator(&scriptedProvider{}, store, &fakeTarget{}, nil)

	draft := seedDraft(t, store, domain.StatusPending, "a pending post")

	result, err := o.PublishDraft(context.Background(), draft.ID)
	if err != nil || !result.Success {
		t.Fatalf("pending drafts are publishable, got result=%+v err=%v", result, err)
	}
}

func TestPublishRejectedDraftRefused(t *testing.T) {
	store := newFakeStore()
	target := &fakeTarget{}
	o := newTestOrchestrator(&scriptedProvider{}, store, target, nil)

	draft := seedDraft(t, store, domain.StatusRejected, "a rejected post")

	_, err := o.PublishDraft(context.Background(), draft.ID)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(target.published) != 0 {
		t.Error("rejected draft must never reach the network")
	}
}

func TestPublishFailureLeavesStatusUntouched(t *testing.T) {
	store := newFakeStore()
	target := &fakeTarget{publishErr: errors.New("api 500")}
	o := newTestOrchestrator(&scriptedProvider{}, store, target, nil)

	draft := seedDraft(t, store, domain.StatusApproved, "an approved post")

	result, err := o.PublishDraft(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("publish failures are reported in the result, not as errors: %v", err)
	}
	if result.Success || result.Error == "" {
		t.Errorf("result = %+v, want failure with reason", result)
	}

	stored, _ := store.GetByID(context.Background(), draft.ID)
	if stored.Status != domain.StatusApproved {
		t.Errorf("status = %s, want approved left untouched", stored.Status)
	}
}

func TestPublishApprovedDraftsDelayPlacement(t *testing.T) {
	store := newFakeStore()
	target := &fakeTarget{}
	o := newTestOrchestrator(&scriptedProvider{}, store, target, nil)

	for i := 0; i < 3; i++ {
		seedDraft(t, store, domain.StatusApproved, "approved post")
	}

	var slept []time.Duration
	results, err := o.PublishApprovedDrafts(context.Background(), 60*time.Second, func(d time.Duration) {
		slept = append(slept, d)
	})
	if err != nil {
		t.Fatalf("PublishApprovedDrafts() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// Delay goes between publishes only: two gaps for three posts.
	if len(slept) != 2 {
		t.Errorf("sleeps = %d, want 2", len(slept))
	}
	for _, d := range slept {
		if d != 60*time.Second {
			t.Errorf("slept %v, want 60s", d)
		}
	}
}

func TestPublishApprovedDraftsContinuesPastFailure(t *testing.T) {
	store := newFakeStore()
	target := &fakeTarget{publishErr: errors.New("api 500"), failOnCall: 2}
	o := newTestOrchestrator(&scriptedProvider{}, store, target, nil)

	for i := 0; i < 3; i++ {
		seedDraft(t, store, domain.StatusApproved, "approved post")
	}

	results, err := o.PublishApprovedDrafts(context.Background(), 0, func(time.Duration) {})
	if err != nil {
		t.Fatalf("PublishApprovedDrafts() error: %v", err)
	}

	var succeeded, failed int
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}
	if succeeded != 2 || failed != 1 {
		t.Errorf("succeeded=%d failed=%d, want 2/1 (batch continues past a failure)", succeeded, failed)
	}
}

func TestPublishApprovedDraftsEmpty(t *testing.T) {
	o := newTestOrchestrator(&scriptedProvider{}, newFakeStore(), &fakeTarget{}, nil)

	results, err := o.PublishApprovedDrafts(context.Background(), time.Minute, func(time.Duration) {
		t.Error("no drafts, no sleeping")
	})
	if err != nil {
		t.Fatalf("PublishApprovedDrafts() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}
