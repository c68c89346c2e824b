// Package main provides vidtubectl, the administration CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vidtube/vidtube-api-go/internal/auth"
	"github.com/vidtube/vidtube-api-go/internal/config"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/service"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
)

const commandTimeout = 30 * time.Second

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

// migrator is the part of *migrate.Migrate the CLI drives.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// app resolves the CLI's dependencies lazily, so commands that fail flag
// validation never touch the database.
type app struct {
	loadConfig  func() (*config.Config, error)
	newMigrator func(databaseURL string) (migrator, error)
	openUsers   func(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error)
}

func newApp() *app {
	return &app{
		loadConfig: func() (*config.Config, error) {
			if err := config.LoadDotEnv(); err != nil {
				return nil, err
			}
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
				return nil, fmt.Errorf("init logger: %w", err)
			}
			return cfg, nil
		},
		newMigrator: func(databaseURL string) (migrator, error) {
			return db.NewMigrator(databaseURL)
		},
		openUsers: func(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
			pool, err := db.NewPool(ctx, db.ConfigFrom(cfg.Database))
			if err != nil {
				return nil, nil, err
			}
			return repository.NewUserRepository(pool), func() { db.Close(pool) }, nil
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vidtubectl",
		Short:        "Administer a vidtube deployment",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newUserCmd(a))
	rootCmd.AddCommand(newTokenCmd(a))

	return rootCmd
}

func newMigrateCmd(a *app) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().IntVar(&steps, "steps", 0, "Number of steps to migrate (0 means all)")

	run := func(direction string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			return a.withMigrator(func(m migrator) error {
				if err := migrateStep(m, direction, steps); err != nil {
					return err
				}
				return printVersion(cmd.OutOrStdout(), m)
			})
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply pending migrations", Args: cobra.NoArgs, RunE: run("up")},
		&cobra.Command{Use: "down", Short: "Roll back migrations", Args: cobra.NoArgs, RunE: run("down")},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(func(m migrator) error {
					return printVersion(cmd.OutOrStdout(), m)
				})
			},
		},
	)

	return cmd
}

func (a *app) withMigrator(fn func(migrator) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	m, err := a.newMigrator(cfg.Database.DatabaseURL())
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func migrateStep(m migrator, direction string, steps int) error {
	var err error
	switch {
	case direction == "up" && steps > 0:
		err = m.Steps(steps)
	case direction == "up":
		err = m.Up()
	case steps > 0:
		err = m.Steps(-steps)
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

func printVersion(w io.Writer, m migrator) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(w, "no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get migration version: %w", err)
	}
	fmt.Fprintf(w, "version: %d, dirty: %t\n", version, dirty)
	return nil
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var in service.CreateUserInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			return a.withUsers(ctx, func(users repository.UserRepository) error {
				user, err := service.NewUserService(users).Create(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&in.Username, "username", "", "Unique username")
	create.Flags().StringVar(&in.Email, "email", "", "Unique email address")
	create.Flags().StringVar(&in.FullName, "full-name", "", "Display name")
	create.Flags().StringVar(&in.Avatar, "avatar", "", "Avatar URL")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("full-name")

	cmd.AddCommand(create)
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue access tokens for development",
	}

	var rawID string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Print an access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", rawID, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			tokens, err := auth.NewManager(cfg.Auth)
			if err != nil {
				return err
			}

			users, closeUsers, err := a.openUsers(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeUsers()

			user, err := users.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("find user: %w", err)
			}

			token, err := tokens.Issue(user.ID, user.Username, user.Email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&rawID, "user", "", "User id")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}

func (a *app) withUsers(ctx context.Context, fn func(repository.UserRepository) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	users, closeUsers, err := a.openUsers(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeUsers()
	return fn(users)
}
