package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const keyPrefix = "opening_hours:"

// OpeningHoursLoader reads opening hours from the system of record.
type OpeningHoursLoader interface {
	ListOpeningHours(ctx context.Context, doctorID string) ([]models.OpeningHour, error)
}

// OpeningHours is a read-through redis cache in front of the loader.
// Redis failures degrade to direct loads.
type OpeningHours struct {
	client *redis.Client
	loader OpeningHoursLoader
	ttl    time.Duration
	logger *zap.Logger
}

func NewOpeningHours(
	client *redis.Client,
	loader OpeningHoursLoader,
	ttl time.Duration,
	logger *zap.Logger,
) *OpeningHours {
	return &OpeningHours{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logging.OrNop(logger),
	}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *OpeningHours) OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error) {
	key := keyPrefix + doctorID

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var hours []availability.OpeningHour
		if jsonErr := json.Unmarshal(raw, &hours); jsonErr == nil {
			return hours, nil
		}
		c.logger.Warn("discarding corrupt opening hours cache entry", zap.String("doctor_id", doctorID))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("opening hours cache read failed", zap.String("doctor_id", doctorID), zap.Error(err))
	}

	rows, err := c.loader.ListOpeningHours(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	hours := models.OpeningHoursToDomain(rows)

	if payload, err := json.Marshal(hours); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("opening hours cache write failed", zap.String("doctor_id", doctorID), zap.Error(err))
		}
	}

	return hours, nil
}

// Invalidate drops the cached hours of a doctor.
func (c *OpeningHours) Invalidate(ctx context.Context, doctorID string) error {
	return c.client.Del(ctx, keyPrefix+doctorID).Err()
}
