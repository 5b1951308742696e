package draft

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// DBExecutor is the subset of *sql.DB the postgres repository needs
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// RedisClient is the subset of *redis.Client the redis repository needs
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Repository is implemented by every draft backend
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*calendar.Draft, error)
	Save(ctx context.Context, d *calendar.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpiringRepository is a backend that needs a periodic sweep of stale drafts
type ExpiringRepository interface {
	Repository
	DeleteExpired(ctx context.Context) (int64, error)
}

var (
	_ ExpiringRepository = (*MemoryRepository)(nil)
	_ ExpiringRepository = (*PostgresRepository)(nil)
	_ Repository         = (*RedisRepository)(nil)
)
