package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveAnalysis records an analysis run. The document must exist.
func (db *DB) SaveAnalysis(a Analysis) (*Analysis, error) {
	a.CreatedAt = db.now()
	res, err := db.conn.Exec(`
		INSERT INTO analyses (document_id, score, readability, word_count, suggestion_count, augmentation, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.DocumentID, a.Score, a.Readability, a.WordCount, a.SuggestionCount,
		a.Augmentation, a.Payload, formatTime(a.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting analysis for %s: %w", a.DocumentID, err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LatestAnalysis returns the most recent analysis of a document, or
// ErrNotFound when it has none.
func (db *DB) LatestAnalysis(documentID string) (*Analysis, error) {
	row := db.conn.QueryRow(`
		SELECT id, document_id, score, readability, word_count, suggestion_count, augmentation, payload, created_at
		FROM analyses WHERE document_id = ? ORDER BY id DESC LIMIT 1`, documentID)

	var (
		a         Analysis
		createdAt string
	)
	err := row.Scan(&a.ID, &a.DocumentID, &a.Score, &a.Readability, &a.WordCount,
		&a.SuggestionCount, &a.Augmentation, &a.Payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading analysis for %s: %w", documentID, err)
	}
	a.CreatedAt = parseTime(createdAt)
	return &a, nil
}
