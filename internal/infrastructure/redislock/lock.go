package redislock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotOwner = errors.New("lock not owned by this token")

const releaseScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// Locker hands out SET NX based locks shared by every replica that talks to
// the same Redis.
type Locker struct {
	client *redis.Client
}

func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		Password: password,
		DB: db,
		PoolSize: 10,
		PoolTimeout: 4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries: 3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	slog.Info("redis connected", "addr", addr)
	return client, nil
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// TryAcquire returns ok=false without error when somebody else holds the lock.
func (l *Locker) TryAcquire(ctx context.Context, resource string, ttl time.Duration) (release func(context.Context) error, ok bool, err error) {
	key := fmt.Sprintf("lock:%s", resource)
	token := uuid.New().String()

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	release = func(ctx context.Context) error {
		result, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("release lock: %w", err)
		}
		if result == 0 {
			return ErrNotOwner
		}
		return nil
	}
	return release, true, nil
}
