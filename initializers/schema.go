package initializers

import (
	"log"
	"strings"
)

// Schema setup runs once at startup, before any request is served. Every
// statement is idempotent so restarting the service against an existing
// database is a no-op. Runtime code never creates or alters tables.

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS config (
		config_id SERIAL PRIMARY KEY,
		community_id BIGINT NOT NULL UNIQUE,
		lore_channel_id BIGINT,
		moment_channel_id BIGINT,
		verification_channel_id BIGINT,
		verifier_role_id BIGINT,
		datetime_create TIMESTAMP NOT NULL DEFAULT NOW(),
		datetime_update TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS lore_submission (
		lore_submission_id SERIAL PRIMARY KEY,
		community_id BIGINT NOT NULL,
		author_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at TIMESTAMP NOT NULL DEFAULT NOW(),
		verified_at TIMESTAMP,
		verified_by BIGINT,
		verification_message_ref TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS moment_submission (
		moment_submission_id SERIAL PRIMARY KEY,
		community_id BIGINT NOT NULL,
		author_id BIGINT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at TIMESTAMP NOT NULL DEFAULT NOW(),
		verified_at TIMESTAMP,
		verified_by BIGINT,
		verification_message_ref TEXT,
		moment_id INT
	)`,

	`CREATE TABLE IF NOT EXISTS lore (
		lore_id SERIAL PRIMARY KEY,
		community_id BIGINT NOT NULL UNIQUE,
		content TEXT NOT NULL,
		current_version INT NOT NULL DEFAULT 1,
		datetime_create TIMESTAMP NOT NULL DEFAULT NOW(),
		datetime_update TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS lore_version (
		lore_version_id SERIAL PRIMARY KEY,
		community_id BIGINT NOT NULL,
		version INT NOT NULL,
		content TEXT NOT NULL,
		created_by BIGINT NOT NULL,
		created_from_submission_id INT,
		datetime_create TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (community_id, version)
	)`,

	`CREATE TABLE IF NOT EXISTS moment (
		moment_id SERIAL PRIMARY KEY,
		community_id BIGINT NOT NULL,
		content TEXT NOT NULL,
		submitted_by BIGINT NOT NULL,
		verified_by BIGINT NOT NULL,
		datetime_create TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lore_submission_community_status ON lore_submission (community_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_moment_submission_community_status ON moment_submission (community_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_moment_community ON moment (community_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lore_version_community ON lore_version (community_id)`,

	// The FK has no IF NOT EXISTS form, so a rerun raises duplicate_object.
	`ALTER TABLE moment_submission ADD CONSTRAINT fk_moment_submission_moment
		FOREIGN KEY (moment_id) REFERENCES moment (moment_id) ON DELETE SET NULL`,
}

func MigrateSchema() {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			log.Fatalf("schema setup failed: %v", err)
		}
	}
	log.Println("schema ready")
}
