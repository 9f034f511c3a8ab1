package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 游客购物车过期时间 - 7天
const guestCartExpireAt = 7 * 24 * time.Hour

// GuestCartStorage 游客购物车：redis hash，field=stock_id value=数量
type GuestCartStorage struct {
	redis *redis.Client
}

func NewGuestCartStorage(rds *redis.Client) *GuestCartStorage {
	return &GuestCartStorage{rds}
}

// Add 添加/累加一行
// @params token  游客令牌
// @params stockID 库存ID
// @params qty    数量
func (g *GuestCartStorage) Add(ctx context.Context, token string, stockID uint64, qty int) error {
	key := g.name(token)
	pipe := g.redis.Pipeline()
	pipe.HIncrBy(ctx, key, strconv.FormatUint(stockID, 10), int64(qty))
	pipe.Expire(ctx, key, guestCartExpireAt)
	_, err := pipe.Exec(ctx)
	return err
}

// Set 覆盖一行数量，qty <= 0 时删行
func (g *GuestCartStorage) Set(ctx context.Context, token string, stockID uint64, qty int) error {
	key := g.name(token)
	field := strconv.FormatUint(stockID, 10)
	if qty <= 0 {
		return g.redis.HDel(ctx, key, field).Err()
	}
	pipe := g.redis.Pipeline()
	pipe.HSet(ctx, key, field, qty)
	pipe.Expire(ctx, key, guestCartExpireAt)
	_, err := pipe.Exec(ctx)
	return err
}

// All 取整个购物车 stock_id -> 数量
func (g *GuestCartStorage) All(ctx context.Context, token string) (map[uint64]int, error) {
	items, err := g.redis.HGetAll(ctx, g.name(token)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]int, len(items))
	for field, val := range items {
		sid, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(val)
		if err != nil || qty <= 0 {
			continue
		}
		out[sid] = qty
	}
	return out, nil
}

// Clear 下单成功后清空
func (g *GuestCartStorage) Clear(ctx context.Context, token string) error {
	return g.redis.Del(ctx, g.name(token)).Err()
}

// cart:guest:{token}
func (g *GuestCartStorage) name(token string) string {
	return fmt.Sprintf("cart:guest:%s", token)
}
