package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jamaluki-backend/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCacheMiss is returned by Cache.Get for an absent key.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}
	return b, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}

const categoriesKey = "catalog:service_categories"

// CachedStore serves the service category taxonomy from a read-through
// cache. Every other call goes straight to the wrapped store. Cache failures
// are logged and fall back to the store.
type CachedStore struct {
	Store
	cache Cache
	ttl   time.Duration

	// set on transaction views that wrote a category
	dirty *bool
}

func NewCachedStore(inner Store, cache Cache, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: inner, cache: cache, ttl: ttl}
}

func (s *CachedStore) ListServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	if s.dirty == nil {
		if b, err := s.cache.Get(ctx, categoriesKey); err == nil {
			var categories []models.ServiceCategory
			if err := json.Unmarshal(b, &categories); err == nil {
				return categories, nil
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			logrus.WithError(err).Warn("category cache read failed")
		}
	}

	categories, err := s.Store.ListServiceCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.dirty == nil {
		if b, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoriesKey, b, s.ttl); err != nil {
				logrus.WithError(err).Warn("category cache write failed")
			}
		}
	}
	return categories, nil
}

func (s *CachedStore) CreateServiceCategory(ctx context.Context, category *models.ServiceCategory) error {
	if err := s.Store.CreateServiceCategory(ctx, category); err != nil {
		return err
	}
	if s.dirty != nil {
		*s.dirty = true
		return nil
	}
	s.invalidate(ctx)
	return nil
}

// WithTx defers invalidation until the transaction commits.
func (s *CachedStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.dirty != nil {
		return fn(s)
	}
	dirty := false
	err := s.Store.WithTx(ctx, func(tx Store) error {
		return fn(&CachedStore{Store: tx, cache: s.cache, ttl: s.ttl, dirty: &dirty})
	})
	if err == nil && dirty {
		s.invalidate(ctx)
	}
	return err
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, categoriesKey); err != nil {
		logrus.WithError(err).Warn("category cache invalidation failed")
	}
}
