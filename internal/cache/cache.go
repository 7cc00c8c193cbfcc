package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MaxTTL bounds how stale a cached balance may be.
const MaxTTL = 5 * time.Second

const keyPrefix = "ledger:balance:"

// BalanceCache keeps two copies of a balance: a short-lived one for regular
// reads and a last-known-good one served only while storage is down.
type BalanceCache struct {
	client      *redis.Client
	ttl         time.Duration
	fallbackTTL time.Duration
}

func New(client *redis.Client, ttl, fallbackTTL time.Duration) *BalanceCache {
	if ttl <= 0 || ttl > MaxTTL {
		ttl = MaxTTL
	}
	return &BalanceCache{
		client:      client,
		ttl:         ttl,
		fallbackTTL: fallbackTTL,
	}
}

func key(userID string) string {
	return keyPrefix + userID
}

func lastKnownKey(userID string) string {
	return keyPrefix + userID + ":lkg"
}

func (c *BalanceCache) Get(ctx context.Context, userID string) (int64, bool, error) {
	return c.get(ctx, key(userID))
}

func (c *BalanceCache) LastKnown(ctx context.Context, userID string) (int64, bool, error) {
	return c.get(ctx, lastKnownKey(userID))
}

func (c *BalanceCache) Set(ctx context.Context, userID string, balance int64) error {
	if err := c.client.Set(ctx, key(userID), balance, c.ttl).Err(); err != nil {
		return err
	}
	if c.fallbackTTL > 0 {
		return c.client.Set(ctx, lastKnownKey(userID), balance, c.fallbackTTL).Err()
	}
	return nil
}

// Invalidate drops the fresh copy only; the last-known value stays for
// degraded reads.
func (c *BalanceCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, key(userID)).Err()
}

func (c *BalanceCache) get(ctx context.Context, k string) (int64, bool, error) {
	balance, err := c.client.Get(ctx, k).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return balance, true, nil
}

// Nop is used when Redis is not reachable: every read misses.
type Nop struct{}

func (Nop) Get(context.Context, string) (int64, bool, error)       { return 0, false, nil }
func (Nop) LastKnown(context.Context, string) (int64, bool, error) { return 0, false, nil }
func (Nop) Set(context.Context, string, int64) error               { return nil }
func (Nop) Invalidate(context.Context, string) error               { return nil }

// Connect returns nil when Redis is unreachable so the caller can continue
// without a cache.
func Connect(ctx context.Context, addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis connection failed, continuing without balance cache", zap.String("addr", addr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	zap.L().Info("redis connection established", zap.String("addr", addr))
	return rdb
}
