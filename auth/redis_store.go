package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "verified-email:"
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(email string) string {
	return fmt.Sprintf("%s%s", s.keyPrefix, email)
}

func (s *RedisStore) Get(ctx context.Context, email string) (*VerifiedEmail, error) {
	val, err := s.client.Get(ctx, s.key(email)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var e VerifiedEmail
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *RedisStore) SetWithExpiry(ctx context.Context, entry VerifiedEmail, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(entry.Email), raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
