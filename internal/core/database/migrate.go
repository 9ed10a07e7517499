package database

import (
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

func init() { migrate.SetTable(migrationTable) }

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{FileSystem: migrationsFS, Root: "migrations"}
}

// sql-migrate 的方言名与配置里的 driver 名不完全一致
func dialectOf(driver string) (string, error) {
	switch driver {
	case "sqlite":
		return "sqlite3", nil
	case "postgres", "mysql":
		return driver, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Migrate 执行内嵌迁移；limit<=0 表示全部
func Migrate(db *gorm.DB, driver string, dir migrate.MigrationDirection, limit int) (int, error) {
	dialect, err := dialectOf(driver)
	if err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return migrate.ExecMax(sqlDB, dialect, source(), dir, limit)
}

type MigrationState struct {
	ID      string
	Applied bool
}

func MigrationStatus(db *gorm.DB, driver string) ([]MigrationState, error) {
	dialect, err := dialectOf(driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	all, err := source().FindMigrations()
	if err != nil {
		return nil, err
	}
	records, err := migrate.GetMigrationRecords(sqlDB, dialect)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(records))
	for _, r := range records {
		applied[r.Id] = true
	}
	out := make([]MigrationState, 0, len(all))
	for _, m := range all {
		out = append(out, MigrationState{ID: m.Id, Applied: applied[m.Id]})
	}
	return out, nil
}
