package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"threadflow/internal/domain"
	"threadflow/internal/httputil"
	"threadflow/internal/service/generation"
)

// PostsHandler serves the approval workflow: listing, editing, approving,
// rejecting and publishing drafts.
type PostsHandler struct {
	store        domain.DraftStore
	orchestrator *generation.Orchestrator
	logger       *slog.Logger
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(store domain.DraftStore, orchestrator *generation.Orchestrator, logger *slog.Logger) *PostsHandler {
	return &PostsHandler{
		store:        store,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

type pendingPostsResponse struct {
	Posts []domain.Draft `json:"posts"`
	Count int            `json:"count"`
}

type approvalResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	PostID  string        `json:"post_id"`
	Status  domain.Status `json:"status"`
}

// ListPending returns all drafts awaiting review: pending ones plus
// approved ones that have not been published yet.
// GET /api/posts/pending
func (h *PostsHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.store.ListByStatus(r.Context(), domain.StatusPending, 0)
	if err != nil {
		handleError(w, err)
		return
	}
	approved, err := h.store.ListByStatus(r.Context(), domain.StatusApproved, 0)
	if err != nil {
		handleError(w, err)
		return
	}

	posts := append(pending, approved...)
	if posts == nil {
		posts = []domain.Draft{}
	}
	httputil.RespondJSON(w, http.StatusOK, pendingPostsResponse{Posts: posts, Count: len(posts)})
}

// GetPost returns one draft with its full detail.
// GET /api/posts/{id}
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	draft, err := h.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, draft)
}

type updateTextRequest struct {
	Text string `json:"post_text"`
}

// UpdateText replaces a draft's text. Published drafts are immutable.
// PUT /api/posts/{id}/text
func (h *PostsHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	var req updateTextRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Text == "" {
		httputil.RespondError(w, http.StatusBadRequest, "post_text is required")
		return
	}

	draft, err := h.store.UpdateText(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, draft)
}

// ApprovePost approves a pending draft; re-approving an approved draft is
// a no-op success.
// POST /api/posts/{id}/approve
func (h *PostsHandler) ApprovePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	draft, err := h.store.UpdateStatus(r.Context(), id, domain.StatusApproved, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("post approved", "post_id", draft.ID, "user_id", httputil.GetUserID(r))
	httputil.RespondJSON(w, http.StatusOK, approvalResponse{
		Success: true,
		Message: "Post approved successfully",
		PostID:  draft.ID,
		Status:  draft.Status,
	})
}

// RejectPost rejects a pending draft. Rejection is terminal.
// POST /api/posts/{id}/reject
func (h *PostsHandler) RejectPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	draft, err := h.store.UpdateStatus(r.Context(), id, domain.StatusRejected, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("post rejected", "post_id", draft.ID, "user_id", httputil.GetUserID(r))
	httputil.RespondJSON(w, http.StatusOK, approvalResponse{
		Success: true,
		Message: "Post rejected",
		PostID:  draft.ID,
		Status:  draft.Status,
	})
}

type publishResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PostID    string `json:"post_id"`
	ThreadID  string `json:"thread_id,omitempty"`
	ThreadURL string `json:"thread_url,omitempty"`
}

// PublishPost publishes an approved (or pending) draft to Threads.
// POST /api/posts/{id}/publish
func (h *PostsHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	result, err := h.orchestrator.PublishDraft(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}
	if !result.Success {
		httputil.RespondError(w, http.StatusBadGateway,
			fmt.Sprintf("Failed to post to Threads: %s", result.Error))
		return
	}

	httputil.RespondJSON(w, http.StatusOK, publishResponse{
		Success:   true,
		Message:   "Post published successfully",
		PostID:    result.DraftID,
		ThreadID:  result.ThreadID,
		ThreadURL: result.ThreadURL,
	})
}
