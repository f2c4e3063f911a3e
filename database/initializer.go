package database

import (
	"log"
)

const coursesTable = `
	CREATE TABLE IF NOT EXISTS courses (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		title TEXT NOT NULL,
		subtitle TEXT,
		author VARCHAR(100) NOT NULL,
		category VARCHAR(50) NOT NULL,
		rating NUMERIC(6,2) NOT NULL DEFAULT 0.0,
		thumb_url TEXT NOT NULL,
		price NUMERIC(6,2) NOT NULL,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE
	);
`

const categoryIndex = `CREATE INDEX IF NOT EXISTS idx_category ON courses (category);`

func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgreSQL Database.", "Initializing Tables")
	if _, err := s.db.Exec(coursesTable); err != nil {
		return err
	}

	log.Println("Initializing PostgreSQL Database.", "Initializing Indexes")
	if _, err := s.db.Exec(categoryIndex); err != nil {
		return err
	}

	return nil
}
