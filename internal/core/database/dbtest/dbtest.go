// Package dbtest 提供已迁移的内存 sqlite，供各层测试使用
package dbtest

import (
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"employee-directory/internal/core/database"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()
	// 单连接：内存库随连接关闭而消失
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	_, err = database.Migrate(db, "sqlite", migrate.Up, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
