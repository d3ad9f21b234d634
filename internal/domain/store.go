package domain

import "context"

// PublishInfo carries the external identifiers recorded on the
// pending→published transition.
type PublishInfo struct {
	ThreadID  string
	ThreadURL string
}

// DraftStore is the durable record of generated drafts. The store treats
// every operation as an atomic request/response; concurrent races on the
// same draft are resolved by the backing database's own constraints.
type DraftStore interface {
	Create(ctx context.Context, draft *Draft) error
	GetByID(ctx context.Context, id string) (*Draft, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Draft, error)
	// UpdateStatus applies a workflow transition, stamping approved_at or
	// published_at as appropriate. Forbidden transitions return an
	// InvalidTransitionError without touching the row.
	UpdateStatus(ctx context.Context, id string, status Status, info *PublishInfo) (*Draft, error)
	// UpdateText replaces a draft's text. Published drafts are immutable.
	UpdateText(ctx context.Context, id, text string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}
