package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"threadflow/internal/domain"
)

// PostgresDraftStore implements the domain.DraftStore interface on the
// Supabase Postgres pending_posts table.
type PostgresDraftStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDraftStore creates a new draft store
func NewDraftStore(config *RepositoryConfig) domain.DraftStore {
	return &PostgresDraftStore{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const draftColumns = "id, post_text, mode, status, metadata, created_at, approved_at, published_at, thread_id, thread_url"

// Create inserts a new draft, assigning its ID and creation time.
func (s *PostgresDraftStore) Create(ctx context.Context, draft *domain.Draft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.Status == "" {
		draft.Status = domain.StatusPending
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}
	if draft.Metadata == nil {
		draft.Metadata = map[string]any{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, post_text, mode, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, s.tables.Drafts)

	err := s.pool.QueryRow(ctx, query,
		draft.ID,
		draft.Text,
		string(draft.Mode),
		string(draft.Status),
		draft.Metadata,
		draft.CreatedAt,
	).Scan(&draft.ID, &draft.CreatedAt)

	if err != nil {
		return fmt.Errorf("create draft: %w", err)
	}

	return nil
}

// GetByID retrieves a draft by ID
func (s *PostgresDraftStore) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, draftColumns, s.tables.Drafts)

	draft, err := s.scanDraft(ctx, query, id)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	return draft, nil
}

// ListByStatus retrieves drafts in the given status, newest first.
// Approved drafts are ordered by approval time so batch publishing walks
// them in approval order.
func (s *PostgresDraftStore) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Draft, error) {
	order := "created_at DESC"
	if status == domain.StatusApproved {
		order = "approved_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE status = $1 ORDER BY %s
	`, draftColumns, s.tables.Drafts, order)

	args := []any{string(status)}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []domain.Draft
	for rows.Next() {
		var d domain.Draft
		if err := rows.Scan(
			&d.ID, &d.Text, &d.Mode, &d.Status, &d.Metadata,
			&d.CreatedAt, &d.ApprovedAt, &d.PublishedAt, &d.ThreadID, &d.ThreadURL,
		); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	return drafts, nil
}

// UpdateStatus applies a workflow transition. The current status is read
// first and the transition validated before any write; the state machine
// never allows leaving published or rejected.
func (s *PostgresDraftStore) UpdateStatus(ctx context.Context, id string, status domain.Status, info *domain.PublishInfo) (*domain.Draft, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown status %q", status)}
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, &domain.InvalidTransitionError{From: current.Status, To: status}
	}

	now := time.Now().UTC()
	set := "status = $2"
	args := []any{id, string(status)}

	switch status {
	case domain.StatusApproved:
		set += fmt.Sprintf(", approved_at = $%d", len(args)+1)
		args = append(args, now)
	case domain.StatusPublished:
		set += fmt.Sprintf(", published_at = $%d", len(args)+1)
		args = append(args, now)
		if info != nil {
			if info.ThreadID != "" {
				set += fmt.Sprintf(", thread_id = $%d", len(args)+1)
				args = append(args, info.ThreadID)
			}
			if info.ThreadURL != "" {
				set += fmt.Sprintf(", thread_url = $%d", len(args)+1)
				args = append(args, info.ThreadURL)
			}
		}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s WHERE id = $1
		RETURNING %s
	`, s.tables.Drafts, set, draftColumns)

	draft, err := s.scanDraft(ctx, query, args...)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update draft status: %w", err)
	}

	s.logger.Info("draft status updated", "draft_id", id, "from", current.Status, "to", status)
	return draft, nil
}

// UpdateText replaces a draft's text. Published drafts are immutable.
func (s *PostgresDraftStore) UpdateText(ctx context.Context, id, text string) (*domain.Draft, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.StatusPublished {
		return nil, &domain.ValidationError{Message: "cannot edit a published post"}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET post_text = $2 WHERE id = $1
		RETURNING %s
	`, s.tables.Drafts, draftColumns)

	draft, err := s.scanDraft(ctx, query, id, text)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update draft text: %w", err)
	}

	return draft, nil
}

// Delete removes a draft (cleanup only; the workflow never deletes).
func (s *PostgresDraftStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tables.Drafts)

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (s *PostgresDraftStore) scanDraft(ctx context.Context, query string, args ...any) (*domain.Draft, error) {
	var d domain.Draft
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.Text, &d.Mode, &d.Status, &d.Metadata,
		&d.CreatedAt, &d.ApprovedAt, &d.PublishedAt, &d.ThreadID, &d.ThreadURL,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
