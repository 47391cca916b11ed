// Package graph is the graph store adapter: generic node CRUD and typed
// edge primitives over PostgreSQL. Repositories map domain entities onto
// the generic node shape; services express traversals through it.
package graph

import (
	"time"

	"github.com/google/uuid"
)

// Node labels
const (
	LabelDocument = "Document"
	LabelConcept  = "Concept"
	LabelPage     = "Page"
	LabelVersion  = "Version"
	LabelTag      = "Tag"
)

// Edge types
const (
	EdgeSubtypeOf     = "SUBTYPE_OF"      // concept child -> parent
	EdgePartOf        = "PART_OF"         // concept part -> whole
	EdgeSynonymOf     = "SYNONYM_OF"      // concept <-> concept, stored as a directed pair
	EdgeInVersion     = "IN_VERSION"      // page -> version
	EdgeChildOf       = "CHILD_OF"        // page -> parent page
	EdgeDisplays      = "DISPLAYS"        // page -> document
	EdgeUsesConcept   = "USES_CONCEPT"    // document -> concept
	EdgeHasTag        = "HAS_TAG"         // document/concept/page -> tag
	EdgeWorkingCopyOf = "WORKING_COPY_OF" // draft copy -> published original
)

// Direction selects which end of an edge a traversal starts from.
type Direction string

const (
	// DirectionOut follows edges whose from_id is the start node.
	DirectionOut Direction = "out"
	// DirectionIn follows edges whose to_id is the start node.
	DirectionIn Direction = "in"
)

// Node is the generic record shape of the graph store. Props carries the
// label-specific fields as stored; repositories own the mapping.
type Node struct {
	ID        uuid.UUID
	Label     string
	Props     map[string]any
	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListResult is one page of nodes plus the unpaged match count.
type ListResult struct {
	Items []*Node
	Total int
}
