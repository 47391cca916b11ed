package models

import (
	"time"

	"github.com/google/uuid"
)

// Concept is a glossary entry. Concepts participate in three typed
// relationships to other concepts (subtype, part-whole, synonym) and are
// referenced from documents via USES_CONCEPT edges.
type Concept struct {
	ID          uuid.UUID `json:"id"`
	Term        string    `json:"term"`
	Description string    `json:"description,omitempty"`
	Lang        string    `json:"lang"`
	Revision    int64     `json:"revision"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ConceptImpact lists the documents affected by a change to one concept.
type ConceptImpact struct {
	Items []DocumentSummary `json:"items"`
	Total int               `json:"total"`
}
