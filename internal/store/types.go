package store

import "time"

// Document statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidStatus reports whether s is a known document status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Document is a stored piece of writing.
type Document struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	WordCount int       `json:"word_count" yaml:"word_count"`
	Score     int       `json:"score" yaml:"score"`
	Status    string    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// DocumentUpdate carries the fields to change; nil fields are left alone.
type DocumentUpdate struct {
	Title     *string
	Content   *string
	WordCount *int
	Score     *int
	Status    *string
}

// Analysis is one pipeline run recorded against a document. Payload holds
// the encoded pipeline response.
type Analysis struct {
	ID              int64     `json:"id" yaml:"id"`
	DocumentID      string    `json:"document_id" yaml:"document_id"`
	Score           int       `json:"score" yaml:"score"`
	Readability     float64   `json:"readability" yaml:"readability"`
	WordCount       int       `json:"word_count" yaml:"word_count"`
	SuggestionCount int       `json:"suggestion_count" yaml:"suggestion_count"`
	Augmentation    string    `json:"augmentation" yaml:"augmentation"`
	Payload         string    `json:"payload,omitempty" yaml:"payload,omitempty"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
}
