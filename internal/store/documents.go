package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const documentColumns = `id, user_id, title, content, word_count, score, status, created_at, updated_at`

// SaveDocument inserts doc and returns the stored copy. An empty ID is
// replaced with a new UUID, an empty status becomes draft, and both
// timestamps are set to now.
func (db *DB) SaveDocument(doc Document) (*Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Status == "" {
		doc.Status = StatusDraft
	}
	now := db.now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := db.conn.Exec(`
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.UserID, doc.Title, doc.Content, doc.WordCount, doc.Score, doc.Status,
		formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	return &doc, nil
}

// GetDocument returns the document with the given id, or ErrNotFound.
func (db *DB) GetDocument(id string) (*Document, error) {
	row := db.conn.QueryRow(`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", id, err)
	}
	return doc, nil
}

// UpdateDocument applies the non-nil fields of upd, bumps updated_at and
// returns the stored result.
func (db *DB) UpdateDocument(id string, upd DocumentUpdate) (*Document, error) {
	var (
		sets []string
		args []any
	)
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.WordCount != nil {
		sets = append(sets, "word_count = ?")
		args = append(args, *upd.WordCount)
	}
	if upd.Score != nil {
		sets = append(sets, "score = ?")
		args = append(args, *upd.Score)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(db.now()), id)

	res, err := db.conn.Exec(`UPDATE documents SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("updating document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetDocument(id)
}

// DeleteDocument removes a document and its analyses.
func (db *DB) DeleteDocument(id string) error {
	res, err := db.conn.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDocuments returns a user's documents, newest first. A limit of zero
// or less returns all of them.
func (db *DB) ListDocuments(userID string, limit int) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = ? ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*Document, error) {
	var (
		doc                  Document
		createdAt, updatedAt string
	)
	if err := s.Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.Content, &doc.WordCount,
		&doc.Score, &doc.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	doc.CreatedAt = parseTime(createdAt)
	doc.UpdatedAt = parseTime(updatedAt)
	return &doc, nil
}
