package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-directory/internal/core/database/dbtest"
	"employee-directory/internal/domain"
	"employee-directory/pkg/utils"
)

func TestUserRepo_Lifecycle(t *testing.T) {
	r := NewUserRepo(dbtest.New(t))
	ctx := context.Background()

	u := &domain.User{ID: utils.NewID(), Username: "tester", Email: "tester@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, r.Create(ctx, u))

	dup := &domain.User{ID: utils.NewID(), Username: "tester", PasswordHash: "y"}
	assert.ErrorIs(t, r.Create(ctx, dup), domain.ErrDuplicateUsername)

	got, err := r.FindByUsername(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Nil(t, got.LastLoginAt)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, r.TouchLogin(ctx, u.ID, now))
	require.NoError(t, r.SetPassword(ctx, "tester", "new-hash"))

	got, err = r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, now, *got.LastLoginAt, time.Second)
	assert.Equal(t, "new-hash", got.PasswordHash)

	_, err = r.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.SetPassword(ctx, "nobody", "h"), domain.ErrNotFound)
	assert.ErrorIs(t, r.TouchLogin(ctx, "missing", now), domain.ErrNotFound)
}
