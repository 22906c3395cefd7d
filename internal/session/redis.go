package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore wraps Redis for session management.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Username returns the user bound to a session, or "" if none / expired.
func (s *RedisStore) Username(ctx context.Context, sid string) (string, error) {
	val, err := s.rdb.Get(ctx, "session:"+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) SetUsername(ctx context.Context, sid, username string) error {
	return s.rdb.Set(ctx, "session:"+sid, username, TTL).Err()
}

func (s *RedisStore) ClearUsername(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, "session:"+sid).Err()
}

func (s *RedisStore) AddFlash(ctx context.Context, sid string, f Flash) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	key := "flash:" + sid
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, b)
		pipe.Expire(ctx, key, TTL)
		return nil
	})
	return err
}

// PopFlashes returns and removes all pending flashes in one transaction.
func (s *RedisStore) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	key := "flash:" + sid
	var lr *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lr = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var flashes []Flash
	for _, raw := range lr.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
