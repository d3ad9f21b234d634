package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"threadflow/internal/auth"
	"threadflow/internal/brand"
	"threadflow/internal/config"
	"threadflow/internal/handler"
	"threadflow/internal/llm"
	"threadflow/internal/middleware"
	"threadflow/internal/notifier"
	"threadflow/internal/notion"
	"threadflow/internal/repository/postgres"
	"threadflow/internal/service/analyzer"
	"threadflow/internal/service/generation"
	"threadflow/internal/service/prompt"
	"threadflow/internal/threads"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for the approval API. Without a Supabase URL the API
	// runs unauthenticated (local development).
	var jwtVerifier auth.JWTVerifier
	if cfg.SupabaseJWKSURL != "" {
		verifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		jwtVerifier = verifier
	} else {
		logger.Warn("SUPABASE_URL not set, approval API is unauthenticated")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	draftStore := postgres.NewDraftStore(repoConfig)

	// Collaborator clients
	briefSource, err := notion.NewClient(cfg.NotionAPIKey, cfg.NotionDatabaseID, logger)
	if err != nil {
		log.Fatalf("Failed to create Notion client: %v", err)
	}

	threadsClient, err := threads.NewClient(cfg.ThreadsAccessToken, logger)
	if err != nil {
		log.Fatalf("Failed to create Threads client: %v", err)
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
			log.Fatalf("Failed to create email notifier: %v", err)
		}
		mailer = emailNotifier
	} else {
		logger.Info("NOTIFICATION_EMAIL not set, approval emails disabled")
	}

	// Generation stack
	factory := llm.NewProviderFactory(cfg)
	provider, err := factory.GetProvider(cfg.DefaultProvider)
	if err != nil {
		log.Fatalf("Failed to setup LLM provider: %v", err)
	}
	logger.Info("llm provider ready", "provider", provider.Name(), "model", cfg.DefaultModel)

	profile, err := brand.Load(cfg.BrandProfilePath)
	if err != nil {
		log.Fatalf("Failed to load brand profile: %v", err)
	}
	if profile.Loaded() {
		logger.Info("brand profile loaded", "path", cfg.BrandProfilePath)
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

	generateHandler := handler.NewGenerateHandler(orchestrator, cfg.AppBaseURL, logger)
	postsHandler := handler.NewPostsHandler(draftStore, orchestrator, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Generation routes
	mux.HandleFunc("POST /api/generate/briefs", generateHandler.GenerateBriefs)
	mux.HandleFunc("POST /api/generate/analysis", generateHandler.GenerateAnalysis)
	mux.HandleFunc("POST /api/generate/connection", generateHandler.GenerateConnection)

	// Approval workflow routes
	mux.HandleFunc("GET /api/posts/pending", postsHandler.ListPending)
	mux.HandleFunc("GET /api/posts/{id}", postsHandler.GetPost)
	mux.HandleFunc("PUT /api/posts/{id}/text", postsHandler.UpdateText)
	mux.HandleFunc("POST /api/posts/{id}/approve", postsHandler.ApprovePost)
	mux.HandleFunc("POST /api/posts/{id}/reject", postsHandler.RejectPost)
	mux.HandleFunc("POST /api/posts/{id}/publish", postsHandler.PublishPost)

	// Middleware chain: CORS → Recovery → Auth → Routes
	var root http.Handler = mux
	root = middleware.Auth(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls block on the model
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
