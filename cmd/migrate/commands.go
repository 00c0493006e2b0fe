package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"github.com/laiyolobaru/backend/internal/infrastructure/logger"
	"github.com/laiyolobaru/backend/internal/infrastructure/migration"
	"github.com/laiyolobaru/backend/internal/infrastructure/persistence"
	"github.com/laiyolobaru/backend/internal/infrastructure/seed"
	"github.com/laiyolobaru/backend/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultMigrationsDir = "migrations"
	dbPingTimeout        = 10 * time.Second
)

// cli holds the state shared by all subcommands
type cli struct {
	migrationsPath string
	logLevel       string
	log            *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Desa Laiyolo Baru database migration tool",
		Long: `Apply and inspect schema migrations and load seed data.

Migrations embedded in the binary are used unless --path points to a directory.
Database settings come from config.toml and DESA_DATABASE_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{
				Level:      c.logLevel,
				Format:     "console",
				Output:     "stderr",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = logger.Sync(c.log)
			}
		},
	}
	root.PersistentFlags().StringVar(&c.migrationsPath, "path", "", "migrations directory (default: embedded migrations)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		c.upCmd(),
		c.downCmd(),
		c.stepsCmd(),
		c.gotoCmd(),
		c.versionCmd(),
		c.forceCmd(),
		c.createCmd(),
		c.listCmd(),
		c.seedCmd(),
	)
	return root
}

func (c *cli) upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.withMigrator(func(m *migration.Migrator) error { return m.Up() })
		},
	}
}

func (c *cli) downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.withMigrator(func(m *migration.Migrator) error { return m.Down() })
		},
	}
}

func (c *cli) stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "steps <n>",
		Aliases: []string{"step"},
		Short:   "Apply n migrations (positive=up, negative=down)",
		Example: "  migrate steps -- -1",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n == 0 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
		},
	}
}

func (c *cli) gotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(version)) })
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					cmd.Println("No migrations applied")
					return nil
				}
				cmd.Printf("Version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	}
}

func (c *cli) forceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Set the migration version without running migrations",
		Long:  "Set the migration version without running migrations. Use it to recover from a dirty state after a failed migration.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Force(version) })
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "create <name> [description]",
		Short:   "Create a new up/down migration pair",
		Example: `  migrate create add_umkm_rating "Add a rating column to UMKM"`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.migrationsPath
			if dir == "" {
				dir = defaultMigrationsDir
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}

			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			c.log.Info("Migration created",
				zap.Uint("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			cmd.Println(mf.UpPath)
			cmd.Println(mf.DownPath)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := migration.ListMigrations(c.migrationsFS())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("No migrations found")
				return nil
			}
			for _, e := range entries {
				cmd.Println(e.Name)
			}
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load seed data (first super admin, village profile, categories, statistics)",
		Long: `Load the YAML files of the seed directory.

Seeding is idempotent. Existing admins, the profile and categories are kept.
Dusun summaries and population statistics are upserted.
Values like ${DESA_SEED_ADMIN_PASSWORD} are expanded from the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := seed.Load(os.DirFS(dir))
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := persistence.Open(cmd.Context(), &cfg.Database,
				logger.NewGormLogger(c.log, logger.MapGormLogLevel(c.logLevel)))
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			seeder := seed.NewSeeder(
				persistence.NewGormAdminRepository(db.DB),
				persistence.NewGormTravelCategoryRepository(db.DB),
				persistence.NewGormDemographyRepository(db.DB),
				c.log,
			)
			res, err := seeder.Run(cmd.Context(), data)
			if err != nil {
				return err
			}
			c.log.Info("Seed completed",
				zap.Int("admins", res.Admins),
				zap.Bool("profile", res.Profile),
				zap.Int("travel_categories", res.Categories),
				zap.Int("dusun_summaries", res.DusunSummaries),
				zap.Int("population_stats", res.Stats),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "seeds", "directory holding the seed YAML files")
	return cmd
}

func (c *cli) migrationsFS() fs.FS {
	if c.migrationsPath == "" {
		return migrations.FS
	}
	return os.DirFS(c.migrationsPath)
}

// withMigrator opens the database, runs fn and closes everything again
func (c *cli) withMigrator(fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, c.migrationsFS(), c.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			c.log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	return fn(m)
}
