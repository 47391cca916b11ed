package models

import (
	"time"

	"github.com/google/uuid"
)

// Version is one published edition of a documentation set. At most one
// version per team carries IsMain; the version service clears the previous
// main when a new one is promoted.
type Version struct {
	ID          uuid.UUID `json:"id"`
	Version     string    `json:"version"` // semantic, v<major>.<minor>.<patch>
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	IsMain      bool      `json:"is_main"`
	Revision    int64     `json:"revision"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
