package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"threadflow/internal/domain"
	"threadflow/internal/httputil"
	"threadflow/internal/service/generation"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// GenerateHandler exposes the three generation paths over HTTP. Every
// successful call stores a pending draft and returns it with its
// approval URL.
type GenerateHandler struct {
	orchestrator *generation.Orchestrator
	baseURL      string
	logger       *slog.Logger
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(orchestrator *generation.Orchestrator, baseURL string, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		orchestrator: orchestrator,
		baseURL:      strings.TrimRight(baseURL, "/"),
		logger:       logger,
	}
}

type generateBriefsRequest struct {
	Limit        int    `json:"limit"`
	StatusFilter string `json:"status_filter"`
}

func (r *generateBriefsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Limit, validation.Min(1), validation.Max(50)),
		validation.Field(&r.StatusFilter, validation.Length(0, 100)),
	)
}

type generateAnalysisRequest struct {
	Limit int    `json:"limit"`
	Topic string `json:"topic"`
}

func (r *generateAnalysisRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Limit, validation.Min(1), validation.Max(100)),
		validation.Field(&r.Topic, validation.Length(0, 200)),
	)
}

type generateConnectionRequest struct {
	ConnectionType string `json:"connection_type"`
}

func (r *generateConnectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ConnectionType, validation.Length(0, 100)),
	)
}

type draftResponse struct {
	domain.Draft
	ApprovalURL string `json:"approval_url"`
}

func (h *GenerateHandler) respondDraft(w http.ResponseWriter, draft *domain.Draft) {
	httputil.RespondJSON(w, http.StatusCreated, draftResponse{
		Draft:       *draft,
		ApprovalURL: fmt.Sprintf("%s/approve/%s", h.baseURL, draft.ID),
	})
}

// GenerateBriefs generates a post from the first matching Notion brief.
// POST /api/generate/briefs
func (h *GenerateHandler) GenerateBriefs(w http.ResponseWriter, r *http.Request) {
	req := generateBriefsRequest{Limit: 5}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	briefs, err := h.orchestrator.FetchBriefs(r.Context(), req.StatusFilter, req.Limit)
	if err != nil {
		h.logger.Error("brief fetch failed", "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "could not fetch briefs")
		return
	}
	if len(briefs) == 0 {
		httputil.RespondError(w, http.StatusNotFound, "No briefs found")
		return
	}

	result := h.orchestrator.GenerateForBrief(r.Context(), briefs[0])
	if !result.Valid {
		httputil.RespondError(w, http.StatusBadRequest, result.Error)
		return
	}

	draft, err := h.orchestrator.StoreDraft(r.Context(), result)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondDraft(w, draft)
}

// GenerateAnalysis generates a post matching the account's own past style.
// POST /api/generate/analysis
func (h *GenerateHandler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	req := generateAnalysisRequest{Limit: 25}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.orchestrator.GenerateFromAnalysis(r.Context(), req.Topic, req.Limit)
	if err != nil {
		handleError(w, err)
		return
	}
	if !result.Valid {
		httputil.RespondError(w, http.StatusBadRequest, result.Error)
		return
	}

	draft, err := h.orchestrator.StoreDraft(r.Context(), result)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondDraft(w, draft)
}

// GenerateConnection generates a short networking post.
// POST /api/generate/connection
func (h *GenerateHandler) GenerateConnection(w http.ResponseWriter, r *http.Request) {
	var req generateConnectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.orchestrator.GenerateConnection(r.Context(), req.ConnectionType)
	if !result.Valid {
		httputil.RespondError(w, http.StatusBadRequest, result.Error)
		return
	}

	draft, err := h.orchestrator.StoreDraft(r.Context(), result)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondDraft(w, draft)
}
