package session

import (
	"context"
	"fmt"
	"time"

	"employee-directory/internal/core/cache"
)

const redisPrefix = "sess:"

type RedisStore struct{ c *cache.Cache }

func NewRedisStore(c *cache.Cache) *RedisStore { return &RedisStore{c: c} }

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}
	if err := s.c.SetJSON(ctx, redisPrefix+sess.ID, sess, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	ok, err := s.c.GetJSON(ctx, redisPrefix+id, &sess)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !ok || sess.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.c.Del(ctx, redisPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
