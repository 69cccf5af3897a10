package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	servicesCacheKey = "catalog:services"
	staffCacheKey    = "catalog:staff"
)

type catalogStore interface {
	domain.CatalogRepository
	domain.CatalogWriter
}

// CachedCatalog reads the service and staff lists through redis. Cache
// errors fall through to the database; writes drop both keys.
type CachedCatalog struct {
	next   catalogStore
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

func NewCachedCatalog(
	next catalogStore,
	client *redis.Client,
	ttl time.Duration,
	logger *logging.Logger,
) *CachedCatalog {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedCatalog{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if c.get(ctx, servicesCacheKey, &services) {
		return services, nil
	}

	services, err := c.next.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, servicesCacheKey, services)
	return services, nil
}

func (c *CachedCatalog) ListStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if c.get(ctx, staffCacheKey, &staff) {
		return staff, nil
	}

	staff, err := c.next.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, staffCacheKey, staff)
	return staff, nil
}

func (c *CachedCatalog) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return c.next.GetService(ctx, id)
}

func (c *CachedCatalog) GetStaff(ctx context.Context, id uint) (*models.Staff, error) {
	return c.next.GetStaff(ctx, id)
}

func (c *CachedCatalog) CreateService(ctx context.Context, s *models.Service) error {
	if err := c.next.CreateService(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedCatalog) UpdateService(ctx context.Context, s *models.Service) error {
	if err := c.next.UpdateService(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedCatalog) UpdateStaffImage(ctx context.Context, staffID uint, url string) error {
	if err := c.next.UpdateStaffImage(ctx, staffID, url); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedCatalog) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedCatalog) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

func (c *CachedCatalog) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, servicesCacheKey, staffCacheKey).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", "error", err)
	}
}

var (
	_ domain.CatalogRepository = (*CachedCatalog)(nil)
	_ domain.CatalogWriter     = (*CachedCatalog)(nil)
)
