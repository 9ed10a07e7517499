package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-directory/internal/core/cache"
	"employee-directory/internal/core/database/dbtest"
)

func newSession(id string, ttl time.Duration) *Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &Session{ID: id, UserID: "u-1", Username: "alice", CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, newSession("s1", time.Hour)))
	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, s.Delete(ctx, "s1"))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// 删除不存在的会话不算错误
	assert.NoError(t, s.Delete(ctx, "s1"))
}

func TestGormStore(t *testing.T) {
	storeContract(t, NewGormStore(dbtest.New(t)))
}

func TestGormStore_Expired(t *testing.T) {
	db := dbtest.New(t)
	s := NewGormStore(db)
	ctx := context.Background()

	old := newSession("old", time.Hour)
	old.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.Save(ctx, old))
	require.NoError(t, s.Save(ctx, newSession("fresh", time.Hour)))

	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	old.ID = "old2"
	require.NoError(t, s.Save(ctx, old))
	n, err := s.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var count int64
	require.NoError(t, db.Model(&Session{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	storeContract(t, NewRedisStore(c))
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	s := NewRedisStore(c)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, newSession("s1", time.Hour)))
	assert.True(t, mr.Exists("sess:s1"))
	assert.Greater(t, mr.TTL("sess:s1"), 59*time.Minute)

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	expired := newSession("s2", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, s.Save(ctx, expired))
	assert.False(t, mr.Exists("sess:s2"))
}
