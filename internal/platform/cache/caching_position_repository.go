// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_dashboard/internal/feature/portfolio/domain/entity"
	"trading_dashboard/internal/feature/portfolio/usecase"
)

// CachingPositionRepository decorates a PositionRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching of the
// position list without modifying the underlying repository. All writes go
// straight through and invalidate the cached list.
type CachingPositionRepository struct {
	inner     usecase.PositionRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingPositionRepository decorates a PositionRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "positions".
func NewCachingPositionRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PositionRepository, namespace string) *CachingPositionRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "positions"
	}
	return &CachingPositionRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List retrieves positions, checking cache first then falling back to the database.
func (c *CachingPositionRepository) List(ctx context.Context) ([]entity.Position, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Position
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID reads a single position. Single lookups are cheap, so they always
// hit the underlying repository.
func (c *CachingPositionRepository) FindByID(ctx context.Context, id uint) (entity.Position, error) {
	return c.inner.FindByID(ctx, id)
}

// Create inserts a position and invalidates the cached list.
func (c *CachingPositionRepository) Create(ctx context.Context, position *entity.Position) error {
	if err := c.inner.Create(ctx, position); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update saves a position and invalidates the cached list.
func (c *CachingPositionRepository) Update(ctx context.Context, position *entity.Position) error {
	if err := c.inner.Update(ctx, position); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a position and invalidates the cached list.
func (c *CachingPositionRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingPositionRepository) listKey() string {
	return c.namespace + ":all"
}

// invalidate drops the cached list. Best effort: don't fail the write if
// cache deletion fails.
func (c *CachingPositionRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey()).Err()
}

var _ usecase.PositionRepository = (*CachingPositionRepository)(nil)
