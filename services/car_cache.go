package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MahmoudEasa/ijar/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	carCachePrefix     = "car:detail:"
	carListCachePrefix = "cars:v:"
	carCacheVersionKey = "cars:version"
)

// CarCache is a Redis read cache for car listings. List entries are keyed by
// a version counter that is bumped on every write, so invalidation is a
// single INCR instead of a key scan.
type CarCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCarCache(rdb *redis.Client, ttl time.Duration) *CarCache {
	return &CarCache{redis: rdb, ttl: ttl}
}

func (c *CarCache) GetCar(ctx context.Context, id string) (*models.Car, bool) {
	data, err := c.redis.Get(ctx, carCachePrefix+id).Result()
	if err != nil {
		return nil, false
	}
	var car models.Car
	if err := json.Unmarshal([]byte(data), &car); err != nil {
		zap.L().Warn("failed to unmarshal cached car", zap.Error(err))
		return nil, false
	}
	return &car, true
}

func (c *CarCache) GetCarList(ctx context.Context) ([]models.Car, bool) {
	version, err := c.version(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	data, err := c.redis.Get(ctx, c.listKey(version)).Result()
	if err != nil {
		return nil, false
	}
	var cars []models.Car
	if err := json.Unmarshal([]byte(data), &cars); err != nil {
		zap.L().Warn("failed to unmarshal cached car list", zap.Error(err))
		return nil, false
	}
	return cars, true
}

// SetCarAsync caches a single listing off the request path.
func (c *CarCache) SetCarAsync(id string, car *models.Car) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(car)
		if err != nil {
			return
		}
		if err := c.redis.Set(bgCtx, carCachePrefix+id, data, c.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache car", zap.String("car_id", id), zap.Error(err))
		}
	}()
}

// SetCarListAsync caches the full listing page off the request path.
func (c *CarCache) SetCarListAsync(cars []models.Car) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := c.version(bgCtx)
		if err != nil || version == 0 {
			return
		}
		data, err := json.Marshal(cars)
		if err != nil {
			return
		}
		if err := c.redis.Set(bgCtx, c.listKey(version), data, c.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache car list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the list version and drops the detail entry for id.
func (c *CarCache) Invalidate(ctx context.Context, id string) {
	if err := c.redis.Incr(ctx, carCacheVersionKey).Err(); err != nil {
		zap.L().Warn("failed to bump car cache version", zap.Error(err))
	}
	if id != "" {
		if err := c.redis.Del(ctx, carCachePrefix+id).Err(); err != nil {
			zap.L().Warn("failed to drop cached car", zap.String("car_id", id), zap.Error(err))
		}
	}
}

func (c *CarCache) version(ctx context.Context) (int64, error) {
	version, err := c.redis.Get(ctx, carCacheVersionKey).Int64()
	if err == redis.Nil {
		// First use: seed the version so list keys become valid.
		return c.redis.Incr(ctx, carCacheVersionKey).Result()
	}
	return version, err
}

func (c *CarCache) listKey(version int64) string {
	return fmt.Sprintf("%s%d:all", carListCachePrefix, version)
}
