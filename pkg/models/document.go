package models

import (
	"time"

	"github.com/google/uuid"
)

// Document type values
const (
	DocumentTypeAPI      = "api"
	DocumentTypeGeneral  = "general"
	DocumentTypeTutorial = "tutorial"
)

// Document status values. Transitions between them are gated by the
// lifecycle service; nothing else may change Status.
const (
	DocumentStatusDraft    = "draft"
	DocumentStatusInReview = "in_review"
	DocumentStatusDone     = "done"
	DocumentStatusPublish  = "publish"
)

// ValidDocumentType reports whether t is a known document type.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeAPI, DocumentTypeGeneral, DocumentTypeTutorial:
		return true
	}
	return false
}

// ValidDocumentStatus reports whether s is a known document status.
func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusInReview, DocumentStatusDone, DocumentStatusPublish:
		return true
	}
	return false
}

// Document is the metadata node for one piece of documentation. The body
// lives in the object store under ContentKey; only the pointer is kept here.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Title      string    `json:"title"`
	Lang       string    `json:"lang"`
	ContentKey string    `json:"content_key"`
	Summary    string    `json:"summary,omitempty"`
	Revision   int64     `json:"revision"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentSummary is the metadata-only projection used by impact analysis.
type DocumentSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Type   string    `json:"type"`
	Status string    `json:"status"`
	Lang   string    `json:"lang"`
}

// Summarize returns the metadata-only projection of d.
func (d *Document) Summarize() DocumentSummary {
	return DocumentSummary{
		ID:     d.ID,
		Title:  d.Title,
		Type:   d.Type,
		Status: d.Status,
		Lang:   d.Lang,
	}
}
