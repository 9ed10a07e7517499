package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"employee-directory/internal/core/config"
	"employee-directory/internal/core/database"
	"employee-directory/internal/core/logger"
	"employee-directory/internal/core/session"
	"employee-directory/internal/repo"
	"employee-directory/internal/service"
)

// env 子命令共享的配置、日志与数据库连接
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

type envFunc func(ctx context.Context, e *env, cmd *cobra.Command) error

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Employee directory maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	// withEnv 打开数据库后执行 fn，结束时释放
	withEnv := func(fn envFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read(cfgPath)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
			defer cleanup()
			db, err := database.NewGorm(database.Opts{
				Driver:             cfg.DB.Driver,
				DSN:                cfg.DB.DSN,
				Username:           cfg.DB.Username,
				Password:           cfg.DB.Password,
				MaxOpenConns:       cfg.DB.MaxOpenConns,
				MaxIdleConns:       cfg.DB.MaxIdleConns,
				ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
				LogLevel:           cfg.DB.LogLevel,
				Logger:             log,
			})
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer func() { _ = database.Close(db) }()
			return fn(cmd.Context(), &env{cfg: cfg, log: log, db: db}, cmd)
		}
	}

	root.AddCommand(
		newMigrateCmd(withEnv),
		newCreateUserCmd(withEnv),
		newSetPasswordCmd(withEnv),
		newClearSessionsCmd(withEnv),
	)
	return root
}

func newMigrateCmd(withEnv func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Apply, roll back or inspect schema migrations"}

	var upLimit int
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(_ context.Context, e *env, c *cobra.Command) error {
			n, err := database.Migrate(e.db, e.cfg.DB.Driver, migrate.Up, upLimit)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		}),
	}
	up.Flags().IntVar(&upLimit, "limit", 0, "maximum migrations to apply (0 = all)")

	var downLimit int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(_ context.Context, e *env, c *cobra.Command) error {
			n, err := database.Migrate(e.db, e.cfg.DB.Driver, migrate.Down, downLimit)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "rolled back %d migration(s)\n", n)
			return nil
		}),
	}
	down.Flags().IntVar(&downLimit, "limit", 1, "maximum migrations to roll back (0 = all)")

	status := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(_ context.Context, e *env, c *cobra.Command) error {
			states, err := database.MigrationStatus(e.db, e.cfg.DB.Driver)
			if err != nil {
				return err
			}
			for _, s := range states {
				mark := "pending"
				if s.Applied {
					mark = "applied"
				}
				fmt.Fprintf(c.OutOrStdout(), "%-8s %s\n", mark, s.ID)
			}
			return nil
		}),
	}

	cmd.AddCommand(up, down, status)
	return cmd
}

func newCreateUserCmd(withEnv func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a login account",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(ctx context.Context, e *env, c *cobra.Command) error {
			u, err := service.NewAuthService(repo.NewUserRepo(e.db)).CreateUser(ctx, username, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "created user %s (%s)\n", u.Username, u.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSetPasswordCmd(withEnv func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "setpassword",
		Short: "Replace a user's password",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(ctx context.Context, e *env, c *cobra.Command) error {
			err := service.NewAuthService(repo.NewUserRepo(e.db)).SetPassword(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "password updated for %s\n", username)
			return nil
		}),
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newClearSessionsCmd(withEnv func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "clearsessions",
		Short: "Delete expired sessions from the sessions table",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(ctx context.Context, e *env, c *cobra.Command) error {
			if e.cfg.Session.Store == "redis" {
				return errors.New("redis sessions expire on their own; nothing to clear")
			}
			n, err := session.NewGormStore(e.db).PurgeExpired(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "removed %d expired session(s)\n", n)
			return nil
		}),
	}
}
