// Command postgen runs the generation pipeline from a terminal: generate
// posts in one of the three modes, review them interactively (or
// auto-approve), and publish the approved ones to Threads.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"threadflow/internal/brand"
	"threadflow/internal/config"
	"threadflow/internal/domain"
	"threadflow/internal/llm"
	"threadflow/internal/notifier"
	"threadflow/internal/notion"
	"threadflow/internal/repository/postgres"
	"threadflow/internal/service/analyzer"
	"threadflow/internal/service/generation"
	"threadflow/internal/service/prompt"
	"threadflow/internal/threads"
)

func main() {
	mode := flag.String("mode", "briefs", "generation mode: briefs, analysis or connection")
	limit := flag.Int("limit", 5, "max briefs to process (briefs) or posts to analyze (analysis)")
	status := flag.String("status", "", "filter briefs by status, e.g. Ready (briefs mode only)")
	topic := flag.String("topic", "", "optional topic (analysis mode only)")
	connectionType := flag.String("connection-type", "", "audience for connection mode, e.g. founders")
	autoApprove := flag.Bool("auto-approve", false, "approve all generated posts without review")
	postDelay := flag.Int("post-delay", 60, "delay between posts in seconds")
	flag.Parse()

	if !domain.Mode(*mode).Valid() {
		log.Fatalf("unknown mode %q (want briefs, analysis or connection)", *mode)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	logLevel := slog.LevelWarn
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logOut := io.Writer(os.Stderr)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("log setup: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()
	orchestrator, cleanup, err := buildOrchestrator(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer cleanup()

	results, err := generate(ctx, orchestrator, *mode, *limit, *status, *topic, *connectionType)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	valid := preview(results)
	if len(valid) == 0 {
		fmt.Println("\nNo valid posts to approve.")
		return
	}

	drafts := storeDrafts(ctx, orchestrator, valid)
	if len(drafts) == 0 {
		return
	}

	var approved int
	if *autoApprove {
		fmt.Println("\nAUTO-APPROVE MODE: all posts will be published")
		approved = approveAll(ctx, orchestrator, drafts)
	} else {
		approved = reviewInteractively(ctx, orchestrator, drafts)
	}
	if approved == 0 {
		fmt.Println("\nNo posts approved. Exiting.")
		return
	}

	fmt.Printf("\nPublishing %d approved post(s) to Threads...\n", approved)
	publishResults, err := orchestrator.PublishApprovedDrafts(ctx, time.Duration(*postDelay)*time.Second, nil)
	if err != nil {
		log.Fatalf("publish: %v", err)
	}
	summarize(publishResults)
}

func buildOrchestrator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*generation.Orchestrator, func(), error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	draftStore := postgres.NewDraftStore(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	})

	briefSource, err := notion.NewClient(cfg.NotionAPIKey, cfg.NotionDatabaseID, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	threadsClient, err := threads.NewClient(cfg.ThreadsAccessToken, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	var mailer generation.Notifier
	if cfg.NotificationEmail != "" {
		emailNotifier, err := notifier.NewEmailNotifier(notifier.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			To:       cfg.NotificationEmail,
			BaseURL:  cfg.AppBaseURL,
		}, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		mailer = emailNotifier
	}

	provider, err := llm.NewProviderFactory(cfg).GetProvider(cfg.DefaultProvider)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	profile, err := brand.Load(cfg.BrandProfilePath)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	orchestrator := generation.NewOrchestrator(generation.Config{
		Client:   generation.NewClient(provider, logger),
		Prompts:  prompt.NewBuilder(profile),
		Analyzer: analyzer.New(logger),
		Briefs:   briefSource,
		Target:   threadsClient,
		Store:    draftStore,
		Notifier: mailer,
		Logger:   logger,
	})

	return orchestrator, pool.Close, nil
}

func generate(ctx context.Context, o *generation.Orchestrator, mode string, limit int, status, topic, connectionType string) ([]*domain.GenerationResult, error) {
	switch domain.Mode(mode) {
	case domain.ModeBriefs:
		fmt.Println("Fetching briefs from Notion...")
		briefs, err := o.FetchBriefs(ctx, status, limit)
		if err != nil {
			return nil, err
		}
		if len(briefs) == 0 {
			return nil, fmt.Errorf("no briefs found matching criteria")
		}
		fmt.Printf("Found %d brief(s)\n\nGenerating posts...\n", len(briefs))
		return o.GenerateForBriefs(ctx, briefs), nil

	case domain.ModeAnalysis:
		fmt.Println("Generating post from style analysis...")
		result, err := o.GenerateFromAnalysis(ctx, topic, limit)
		if err != nil {
			return nil, err
		}
		return []*domain.GenerationResult{result}, nil

	case domain.ModeConnection:
		fmt.Println("Generating connection post...")
		return []*domain.GenerationResult{o.GenerateConnection(ctx, connectionType)}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// preview prints every result and returns the valid ones.
func preview(results []*domain.GenerationResult) []*domain.GenerationResult {
	var valid []*domain.GenerationResult
	fmt.Println("\n" + strings.Repeat("=", 70))
	for i, r := range results {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(results), describeResult(r))
		if r.Valid {
			fmt.Printf("\n%s\n\n(%d chars, %d attempt(s))\n", r.Text, len([]rune(r.Text)), r.Attempts)
			valid = append(valid, r)
		} else {
			fmt.Printf("FAILED: %s\n", r.Error)
		}
		fmt.Println(strings.Repeat("-", 70))
	}
	return valid
}

func describeResult(r *domain.GenerationResult) string {
	switch r.Mode {
	case domain.ModeBriefs:
		return "Topic: " + r.Topic
	case domain.ModeConnection:
		return "Connection post"
	default:
		return "Analysis-based post"
	}
}

func storeDrafts(ctx context.Context, o *generation.Orchestrator, results []*domain.GenerationResult) []*domain.Draft {
	var drafts []*domain.Draft
	for _, r := range results {
		draft, err := o.StoreDraft(ctx, r)
		if err != nil {
			fmt.Printf("Could not store draft: %v\n", err)
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

func approveAll(ctx context.Context, o *generation.Orchestrator, drafts []*domain.Draft) int {
	approved := 0
	for _, d := range drafts {
		if err := o.ApproveDraft(ctx, d.ID); err != nil {
			fmt.Printf("Could not approve %s: %v\n", d.ID, err)
			continue
		}
		approved++
	}
	return approved
}

func reviewInteractively(ctx context.Context, o *generation.Orchestrator, drafts []*domain.Draft) int {
	reader := bufio.NewScanner(os.Stdin)
	approved := 0
	for i, d := range drafts {
		fmt.Printf("\n[%d/%d] Approve this post? (y/n)\n\n%s\n> ", i+1, len(drafts), d.Text)
		if !reader.Scan() {
			break
		}
		answer := strings.ToLower(strings.TrimSpace(reader.Text()))
		if answer != "y" && answer != "yes" {
			fmt.Println("Skipped.")
			continue
		}
		if err := o.ApproveDraft(ctx, d.ID); err != nil {
			fmt.Printf("Could not approve: %v\n", err)
			continue
		}
		approved++
	}
	return approved
}

func summarize(results []domain.PublishResult) {
	var succeeded, failed int
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("POSTING SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	for _, r := range results {
		if r.Success {
			succeeded++
			fmt.Printf("  posted: %s\n", r.ThreadURL)
		} else {
			failed++
			fmt.Printf("  failed: %s (%s)\n", r.DraftID, r.Error)
		}
	}
	fmt.Printf("\nSuccessfully posted: %d\nFailed: %d\n", succeeded, failed)
}
