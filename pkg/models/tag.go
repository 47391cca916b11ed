package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a named label attachable to documents, concepts and pages via
// HAS_TAG edges. Names are unique per team.
type Tag struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	Revision    int64     `json:"revision"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
