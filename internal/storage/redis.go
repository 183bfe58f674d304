package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis connects the shared client and pings it once.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		_ = Rdb.Close()
		Rdb = nil
		return fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return nil
}
