package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-directory/internal/core/database/dbtest"
	"employee-directory/internal/domain"
	"employee-directory/internal/repo"
)

func TestAuthService_Authenticate(t *testing.T) {
	users := repo.NewUserRepo(dbtest.New(t))
	s := NewAuthService(users)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, " alice ", "Alice@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)

	got, err := s.Authenticate(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.LastLoginAt)

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "Alice", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "usernames are case-sensitive")
}

func TestAuthService_InactiveUser(t *testing.T) {
	db := dbtest.New(t)
	s := NewAuthService(repo.NewUserRepo(db))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "bob", "", "pw")
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)

	_, err = s.Authenticate(ctx, "bob", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_CreateAndSetPassword(t *testing.T) {
	s := NewAuthService(repo.NewUserRepo(dbtest.New(t)))
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "", "", "pw")
	assert.Error(t, err)
	_, err = s.CreateUser(ctx, "carol", "not-an-email", "pw")
	assert.Error(t, err)

	_, err = s.CreateUser(ctx, "carol", "", "old")
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, "carol", "", "again")
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	require.NoError(t, s.SetPassword(ctx, "carol", "new"))
	_, err = s.Authenticate(ctx, "carol", "old")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "carol", "new")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.SetPassword(ctx, "nobody", "x"), domain.ErrNotFound)
	assert.Error(t, s.SetPassword(ctx, "carol", ""))
}
