// Package objectstore holds document body content outside the graph.
// Documents keep only a content key; bytes live here.
package objectstore

import (
	"context"
)

// Object is stored content plus its media type.
type Object struct {
	Data        []byte
	ContentType string
}

// Store is the body content store. Keys are opaque to callers; the document
// service derives them from document ids.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (*Object, error) // apperrors.ErrNotFound when absent
	Delete(ctx context.Context, key string) error         // deleting an absent key is a no-op
	Exists(ctx context.Context, key string) (bool, error)
}
