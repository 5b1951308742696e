package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// RedisRepository stores each draft under prefix+id with the ttl as key expiry
type RedisRepository struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// NewRedisRepository creates a repository on top of a redis client
func NewRedisRepository(client RedisClient, prefix string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix, ttl: ttl}
}

// Save writes the draft and resets its expiry
func (r *RedisRepository) Save(ctx context.Context, d *calendar.Draft) error {
	raw, err := encode(d)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(d.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save id=%s: %v", ErrCache, d.ID, err)
	}
	return nil
}

// Get loads the draft; an expired key reads as not found
func (r *RedisRepository) Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: Get id=%s: %v", ErrCache, id, err)
	}
	return decode(raw)
}

// Delete removes the draft immediately
func (r *RedisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete id=%s: %v", ErrCache, id, err)
	}
	return nil
}

func (r *RedisRepository) key(id uuid.UUID) string {
	return r.prefix + id.String()
}
