package generation

import (
	"context"
	"fmt"
	"time"

	"threadflow/internal/domain"
)

// Sleeper injects the inter-publish delay so batch tests run instantly.
type Sleeper func(time.Duration)

// ApproveDraft marks a stored draft approved.
func (o *Orchestrator) ApproveDraft(ctx context.Context, draftID string) error {
	if o.store == nil {
		return fmt.Errorf("no draft store configured")
	}
	_, err := o.store.UpdateStatus(ctx, draftID, domain.StatusApproved, nil)
	return err
}

// PublishDraft posts a stored draft to the publish target and marks it
// published. Only approved or pending drafts can be published; on any
// failure the draft's status is left untouched and the reason is surfaced
// in the result.
func (o *Orchestrator) PublishDraft(ctx context.Context, draftID string) (*domain.PublishResult, error) {
	if o.target == nil {
		return nil, fmt.Errorf("no publish target configured")
	}
	if o.store == nil {
		return nil, fmt.Errorf("no draft store configured")
	}

	draft, err := o.store.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Status != domain.StatusApproved && draft.Status != domain.StatusPending {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("cannot publish a %s post", draft.Status),
		}
	}

	published, err := o.target.Publish(ctx, draft.Text)
	if err != nil {
		o.logger.Error("publish failed", "draft_id", draft.ID, "error", err)
		return &domain.PublishResult{DraftID: draft.ID, Error: err.Error()}, nil
	}

	updated, err := o.store.UpdateStatus(ctx, draft.ID, domain.StatusPublished, &domain.PublishInfo{
		ThreadID:  published.ThreadID,
		ThreadURL: published.ThreadURL,
	})
	if err != nil {
		// The post is live but the record is stale; surface both facts.
		return nil, fmt.Errorf("post published as %s but status update failed: %w", published.ThreadID, err)
	}

	if o.notifier != nil {
		if err := o.notifier.ConfirmPublished(ctx, updated, published.ThreadURL); err != nil {
			o.logger.Warn("publish confirmation failed", "draft_id", draft.ID, "error", err)
		}
	}

	return &domain.PublishResult{
		Success:   true,
		DraftID:   draft.ID,
		ThreadID:  published.ThreadID,
		ThreadURL: published.ThreadURL,
	}, nil
}

// PublishApprovedDrafts publishes every approved draft sequentially,
// waiting delay between publishes (never before the first or after the
// last). A failed item is recorded and the batch continues.
func (o *Orchestrator) PublishApprovedDrafts(ctx context.Context, delay time.Duration, sleep Sleeper) ([]domain.PublishResult, error) {
	if o.store == nil {
		return nil, fmt.Errorf("no draft store configured")
	}
	if sleep == nil {
		sleep = time.Sleep
	}

	drafts, err := o.store.ListByStatus(ctx, domain.StatusApproved, 0)
	if err != nil {
		return nil, fmt.Errorf("list approved drafts: %w", err)
	}

	results := make([]domain.PublishResult, 0, len(drafts))
	for i, draft := range drafts {
		if i > 0 && delay > 0 {
			o.logger.Debug("waiting before next publish", "delay", delay)
			sleep(delay)
		}

		result, err := o.PublishDraft(ctx, draft.ID)
		if err != nil {
			results = append(results, domain.PublishResult{DraftID: draft.ID, Error: err.Error()})
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}
