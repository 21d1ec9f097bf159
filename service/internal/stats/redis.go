package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the record as a JSON string under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to addr and checks the server answers.
func NewRedisStore(ctx context.Context, addr, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decode(data)
}

func (s *RedisStore) Save(ctx context.Context, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
