package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is one entry in a version's navigation tree. VersionID is set at
// creation and never changes; ParentID and DocumentID mirror the CHILD_OF
// and DISPLAYS edges.
type Page struct {
	ID         uuid.UUID  `json:"id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Order      int        `json:"order"`
	Visible    bool       `json:"visible"`
	VersionID  uuid.UUID  `json:"version_id"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Revision   int64      `json:"revision"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NavigationNode is one rendered entry of the navigation tree.
type NavigationNode struct {
	ID         uuid.UUID         `json:"id"`
	Slug       string            `json:"slug"`
	Title      string            `json:"title"`
	Order      int               `json:"order"`
	Visible    bool              `json:"visible"`
	DocumentID *uuid.UUID        `json:"document_id"`
	Children   []*NavigationNode `json:"children"`
}

// NavigationTree is the ordered page forest of one version.
type NavigationTree struct {
	Pages []*NavigationNode `json:"pages"`
}
