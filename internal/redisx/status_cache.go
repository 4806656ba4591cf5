package redisx

import (
	"context"
	"fmt"

	"app/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// StatusCache はcache-aside。redisが落ちていてもmissとして扱うだけ
type StatusCache struct {
	rdb *redis.Client
}

func NewStatusCache(rdb *redis.Client) *StatusCache {
	return &StatusCache{rdb: rdb}
}

func (c *StatusCache) GetStatus(ctx context.Context, orderID string) (model.OrderStatus, bool) {
	v, err := c.rdb.Get(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Result()
	if err != nil {
		return "", false
	}
	return model.OrderStatus(v), true
}

func (c *StatusCache) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) {
	_ = c.rdb.Set(ctx, fmt.Sprintf(KeyOrderStatus, orderID), string(status), TTLStatusCache).Err()
}
