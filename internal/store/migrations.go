package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the documents and analyses tables.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL DEFAULT '',
			content     TEXT NOT NULL,
			word_count  INTEGER NOT NULL DEFAULT 0,
			score       INTEGER NOT NULL DEFAULT 0,
			status      TEXT NOT NULL DEFAULT 'draft',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id      TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			score            INTEGER NOT NULL,
			readability      REAL NOT NULL,
			word_count       INTEGER NOT NULL,
			suggestion_count INTEGER NOT NULL,
			augmentation     TEXT NOT NULL DEFAULT '',
			payload          TEXT NOT NULL DEFAULT '',
			created_at       TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_document ON analyses(document_id, id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
