package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/jackyeh168/walk_rewards/src/internal/application/checkout"
	"github.com/redis/go-redis/v9"
)

// ===========================
// Redis IdempotencyStore 實作
// ===========================

// 冪等鍵的保留期：雙擊結帳發生在秒級，
// 24 小時足以覆蓋客戶端任何合理的重試窗口。
const reservationTTL = 24 * time.Hour

// 保留操作本身的互斥鎖 TTL（只護住 SetNX 的往返）
const lockTTL = 3 * time.Second

// RedisIdempotencyStore 以 Redis 實作的冪等鍵存儲
//
// 多實例部署時業務資料庫之外的共享保留點：
// redislock 序列化同一個鍵上的並發保留，
// SET NX 決定 first-wins 的贏家。
type RedisIdempotencyStore struct {
	client *redis.Client
	locker *redislock.Client
}

// NewRedisIdempotencyStore 創建 Redis 冪等鍵存儲
func NewRedisIdempotencyStore(client *redis.Client) checkout.IdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		locker: redislock.New(client),
	}
}

// Reserve 保留一個冪等鍵（first-wins）
func (s *RedisIdempotencyStore) Reserve(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTTL)
	defer cancel()

	lock, err := s.locker.Obtain(ctx, "idempotency:lock:"+key, lockTTL, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			// 另一個請求正在保留同一個鍵：視為重複提交
			return checkout.ErrDuplicateRequest.WithContext("key", key)
		}
		return fmt.Errorf("failed to obtain idempotency lock: %w", err)
	}
	defer lock.Release(ctx) //nolint:errcheck

	reserved, err := s.client.SetNX(ctx, "idempotency:key:"+key, 1, reservationTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if !reserved {
		return checkout.ErrDuplicateRequest.WithContext("key", key)
	}

	return nil
}
