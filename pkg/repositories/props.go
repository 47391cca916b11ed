// Package repositories maps typed domain entities onto the graph store's
// generic node shape. Structural rules live in pkg/services; code here is
// field mapping plus the edge bookkeeping each entity owns.
package repositories

import (
	"github.com/google/uuid"
)

// Node props arrive from jsonb decoding, so numbers are float64 and every
// field access has to tolerate absence. These helpers keep the per-entity
// mapping code flat.

func propString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func propBool(props map[string]any, key string) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return false
}

func propInt(props map[string]any, key string) int {
	switch v := props[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func firstID(ids []uuid.UUID) *uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	id := ids[0]
	return &id
}
