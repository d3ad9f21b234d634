package generation

import (
	"context"
	"fmt"
	"log/slog"

	"threadflow/internal/domain"
	"threadflow/internal/service/analyzer"
	"threadflow/internal/service/prompt"
	"threadflow/internal/threads"
)

// BriefSource supplies content briefs, typically from Notion.
type BriefSource interface {
	FetchBriefs(ctx context.Context, statusFilter string, limit int) ([]domain.Brief, error)
}

// PublishTarget is the social network the pipeline posts to and reads
// past posts from.
type PublishTarget interface {
	Publish(ctx context.Context, text string) (*threads.PublishedPost, error)
	FetchRecent(ctx context.Context, limit int) ([]threads.Post, error)
}

// Notifier delivers approval-workflow messages. Implementations are best
// effort; the orchestrator logs failures and continues.
type Notifier interface {
	NotifyPending(ctx context.Context, draft *domain.Draft) error
	ConfirmPublished(ctx context.Context, draft *domain.Draft, threadURL string) error
}

// Orchestrator wires the analyzer, prompt builder, generation client,
// collaborators and draft store into the three generation paths.
type Orchestrator struct {
	client   *Client
	prompts  *prompt.Builder
	analyzer *analyzer.Analyzer
	briefs   BriefSource
	target   PublishTarget
	store    domain.DraftStore
	notifier Notifier
	logger   *slog.Logger
}

// Config collects the orchestrator's collaborators. Briefs, Target, Store
// and Notifier are optional; paths that need a missing collaborator fail
// with a clear error instead of panicking.
type Config struct {
	Client   *Client
	Prompts  *prompt.Builder
	Analyzer *analyzer.Analyzer
	Briefs   BriefSource
	Target   PublishTarget
	Store    domain.DraftStore
	Notifier Notifier
	Logger   *slog.Logger
}

func NewOrchestrator(cfg Config) *Orchestrator {
	return &Orchestrator{
		client:   cfg.Client,
		prompts:  cfg.Prompts,
		analyzer: cfg.Analyzer,
		briefs:   cfg.Briefs,
		target:   cfg.Target,
		store:    cfg.Store,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}
}

// FetchBriefs returns candidate briefs from the brief source.
func (o *Orchestrator) FetchBriefs(ctx context.Context, statusFilter string, limit int) ([]domain.Brief, error) {
	if o.briefs == nil {
		return nil, fmt.Errorf("no brief source configured")
	}
	return o.briefs.FetchBriefs(ctx, statusFilter, limit)
}

// GenerateForBrief generates a post for one brief.
func (o *Orchestrator) GenerateForBrief(ctx context.Context, brief domain.Brief) *domain.GenerationResult {
	o.logger.Info("generating post", "mode", domain.ModeBriefs, "topic", brief.Topic)

	result := o.generateWithRetry(ctx, func(strict bool) string {
		return o.prompts.Brief(&brief, strict)
	}, MaxPostLength)

	result.Mode = domain.ModeBriefs
	result.Brief = &brief
	result.Topic = brief.Topic
	return result
}

// GenerateForBriefs generates posts for each brief in order, reporting
// per-item progress. A failed item does not stop the batch.
func (o *Orchestrator) GenerateForBriefs(ctx context.Context, briefs []domain.Brief) []*domain.GenerationResult {
	results := make([]*domain.GenerationResult, 0, len(briefs))
	for i, brief := range briefs {
		o.logger.Info("processing brief", "index", i+1, "total", len(briefs), "topic", brief.Topic)

		result := o.GenerateForBrief(ctx, brief)
		results = append(results, result)

		if result.Valid {
			o.logger.Info("generated post", "topic", brief.Topic, "chars", len([]rune(result.Text)))
		} else {
			o.logger.Warn("generation failed", "topic", brief.Topic, "error", result.Error)
		}
	}
	return results
}

// GenerateFromAnalysis fetches the account's recent posts, analyzes their
// style, and generates a post matching it. It fails fast when there is
// nothing to analyze.
func (o *Orchestrator) GenerateFromAnalysis(ctx context.Context, topic string, limit int) (*domain.GenerationResult, error) {
	if o.target == nil {
		return nil, fmt.Errorf("no publish target configured")
	}

	posts, err := o.target.FetchRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, &domain.NotFoundError{Message: "no past posts available to analyze"}
	}

	texts := make([]string, 0, len(posts))
	for _, p := range posts {
		texts = append(texts, p.Text)
	}
	analysis := o.analyzer.Analyze(texts)
	if analysis.Empty() {
		return nil, &domain.ValidationError{Message: "style analysis produced no usable data"}
	}

	o.logger.Info("generating post", "mode", domain.ModeAnalysis, "topic", topic, "analyzed_posts", analysis.TotalPosts)

	styleBlock := analyzer.FormatForPrompt(analysis)
	result := o.generateWithRetry(ctx, func(strict bool) string {
		return o.prompts.StyleBased(topic, styleBlock, strict)
	}, MaxPostLength)

	result.Mode = domain.ModeAnalysis
	result.Analysis = analysis
	result.Topic = topic
	return result, nil
}

// GenerateConnection generates a short networking post. No brief or
// analysis is involved.
func (o *Orchestrator) GenerateConnection(ctx context.Context, connectionType string) *domain.GenerationResult {
	o.logger.Info("generating post", "mode", domain.ModeConnection, "connection_type", connectionType)

	result := o.generateWithRetry(ctx, func(strict bool) string {
		return o.prompts.Connection(connectionType, strict)
	}, MaxConnectionPostLength)

	result.Mode = domain.ModeConnection
	result.ConnectionType = connectionType
	return result
}

// generateWithRetry runs one generation attempt and, only when the output
// breaks the length cap, one more with the strict-length prompt. All other
// failures are terminal after the first attempt.
func (o *Orchestrator) generateWithRetry(ctx context.Context, buildPrompt func(strict bool) string, maxLength int) *domain.GenerationResult {
	promptText := buildPrompt(false)
	result := &domain.GenerationResult{Attempts: 1, Prompt: promptText}

	text, err := o.client.Generate(ctx, promptText, defaultMaxTokens, defaultTemperature)
	if err != nil {
		result.Kind = domain.FailureGeneration
		result.Error = "Failed to generate post"
		o.logger.Error("generation failed", "error", err)
		return result
	}

	validation := Validate(text, maxLength)
	result.Text = text
	result.Valid = validation.Valid
	result.Kind = validation.Kind
	result.Error = validation.Reason

	if validation.Valid || validation.Kind != domain.FailureTooLong {
		return result
	}

	// One retry with tighter length wording.
	o.logger.Info("post over length cap, retrying with strict prompt",
		"chars", len([]rune(text)), "max", maxLength)

	strictPrompt := buildPrompt(true)
	result.Attempts = 2
	result.Prompt = strictPrompt

	text, err = o.client.Generate(ctx, strictPrompt, defaultMaxTokens, defaultTemperature)
	if err != nil {
		result.Kind = domain.FailureGeneration
		result.Error = "Failed to generate post"
		o.logger.Error("strict retry failed", "error", err)
		return result
	}

	validation = Validate(text, maxLength)
	result.Text = text
	result.Valid = validation.Valid
	result.Kind = validation.Kind
	result.Error = validation.Reason
	return result
}

// StoreDraft persists a valid generation result as a pending draft and
// sends the review notification. Notification failures are logged, never
// returned.
func (o *Orchestrator) StoreDraft(ctx context.Context, result *domain.GenerationResult) (*domain.Draft, error) {
	if o.store == nil {
		return nil, fmt.Errorf("no draft store configured")
	}
	if !result.Valid {
		return nil, &domain.ValidationError{Message: result.Error}
	}

	metadata := map[string]any{"attempts": result.Attempts}
	switch result.Mode {
	case domain.ModeBriefs:
		metadata["brief"] = result.Brief
	case domain.ModeAnalysis:
		metadata["analysis"] = result.Analysis
		metadata["topic"] = result.Topic
	case domain.ModeConnection:
		metadata["connection_type"] = result.ConnectionType
	}

	draft := &domain.Draft{
		Text:     result.Text,
		Mode:     result.Mode,
		Metadata: metadata,
	}
	if err := o.store.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("store draft: %w", err)
	}

	if o.notifier != nil {
		if err := o.notifier.NotifyPending(ctx, draft); err != nil {
			o.logger.Warn("review notification failed", "draft_id", draft.ID, "error", err)
		}
	}

	return draft, nil
}
