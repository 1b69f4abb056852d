package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/park285/gamehub/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultResultTTL = 7 * 24 * time.Hour
	maxIndexedResult = 1000
)

// RedisRepository keeps finished games as JSON values with a sorted index by
// end time.
type RedisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) keyResult(id string) string { return "gamehub:result:" + strings.TrimSpace(id) }
func (r *RedisRepository) keyIndex() string          { return "gamehub:results" }

func (r *RedisRepository) SaveResult(ctx context.Context, rec *domain.GameRecord) error {
	if rec == nil || strings.TrimSpace(rec.ID) == "" {
		return nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal game record: %w", err)
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.keyResult(rec.ID), raw, r.ttl)
		pipe.ZAdd(ctx, r.keyIndex(), redis.Z{Score: float64(rec.EndedAt.UnixMilli()), Member: rec.ID})
		// keep only the newest entries in the index
		pipe.ZRemRangeByRank(ctx, r.keyIndex(), 0, -maxIndexedResult-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save game record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *RedisRepository) GetResult(ctx context.Context, id string) (*domain.GameRecord, error) {
	raw, err := r.rdb.Get(ctx, r.keyResult(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load game record %s: %w", id, err)
	}
	var rec domain.GameRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode game record %s: %w", id, err)
	}
	return &rec, nil
}

func (r *RedisRepository) RecentResults(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := r.rdb.ZRevRange(ctx, r.keyIndex(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	out := make([]*domain.GameRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := r.GetResult(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// value expired before its index entry
			_ = r.rdb.ZRem(ctx, r.keyIndex(), id).Err()
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
