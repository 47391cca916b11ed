package objectstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/docforge/docforge-engine/pkg/apperrors"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by Redis. Content bytes and the
// content type are kept under separate keys so Get can return both.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

var _ Store = (*redisStore)(nil)

func contentTypeKey(key string) string {
	return key + ":content-type"
}

func (s *redisStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store content %s: %w", key, err)
	}
	if err := s.client.Set(ctx, contentTypeKey(key), contentType, 0).Err(); err != nil {
		return fmt.Errorf("failed to store content type for %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, key string) (*Object, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read content %s: %w", key, err)
	}

	contentType, err := s.client.Get(ctx, contentTypeKey(key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read content type for %s: %w", key, err)
	}

	return &Object{Data: data, ContentType: contentType}, nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key, contentTypeKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete content %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check content %s: %w", key, err)
	}
	return n > 0, nil
}
