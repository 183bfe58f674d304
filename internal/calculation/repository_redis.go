package calculation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// key 约定：
//
//	kv: calc:result:{id}   -> Record JSON
//	kv: calc:req:{key}     -> id (only seeded requests are indexed)
func resultKey(id string) string {
	return fmt.Sprintf("calc:result:%s", id)
}

func requestIndexKey(key string) string {
	return fmt.Sprintf("calc:req:%s", key)
}

func (r *redisRepo) Save(ctx context.Context, rec *Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	p := r.rdb.Pipeline()
	p.Set(ctx, resultKey(rec.ID), data, ttl)
	if rec.Key != "" {
		p.Set(ctx, requestIndexKey(rec.Key), rec.ID, ttl)
	}
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Record, error) {
	data, err := r.rdb.Get(ctx, resultKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (r *redisRepo) FindByKey(ctx context.Context, key string) (*Record, error) {
	id, err := r.rdb.Get(ctx, requestIndexKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
