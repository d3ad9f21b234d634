package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("SUPABASE_DB_URL")
	if dbURL == "" {
		log.Fatal("SUPABASE_DB_URL environment variable is required")
	}

	// Read environment to determine table prefix
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	prefix := env + "_"
	if override := os.Getenv("TABLE_PREFIX"); override != "" {
		prefix = override
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %spending_posts (
			id           UUID PRIMARY KEY,
			post_text    TEXT NOT NULL,
			mode         TEXT NOT NULL CHECK (mode IN ('briefs', 'analysis', 'connection')),
			status       TEXT NOT NULL DEFAULT 'pending'
			             CHECK (status IN ('pending', 'approved', 'rejected', 'published')),
			metadata     JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			approved_at  TIMESTAMPTZ,
			published_at TIMESTAMPTZ,
			thread_id    TEXT,
			thread_url   TEXT
		);
		CREATE INDEX IF NOT EXISTS %spending_posts_status_idx
			ON %spending_posts (status, created_at DESC);
	`, prefix, prefix, prefix)

	if _, err := db.Exec(createSQL); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	fmt.Printf("Tables created successfully (prefix: %s)\n", prefix)
}
