package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

func NewConnection(connectStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

// EnsureSchema creates the tables this service owns if they are missing.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			bibliography_id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			total_slides INT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			checksum TEXT NOT NULL DEFAULT '',
			ai_summary TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS document_slides (
			bibliography_id TEXT NOT NULL REFERENCES documents(bibliography_id) ON DELETE CASCADE,
			slide_number INT NOT NULL,
			slide_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			layout TEXT NOT NULL DEFAULT 'standard',
			content JSONB NOT NULL DEFAULT '[]',
			background JSONB NOT NULL DEFAULT '{}',
			PRIMARY KEY (bibliography_id, slide_number)
		)`,
		`CREATE TABLE IF NOT EXISTS anchor_tags (
			id SERIAL PRIMARY KEY,
			bibliography_id TEXT NOT NULL,
			slide_number INT NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			payload JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			FOREIGN KEY (bibliography_id, slide_number)
				REFERENCES document_slides(bibliography_id, slide_number) ON DELETE CASCADE
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
