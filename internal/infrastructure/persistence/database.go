package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/article"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/domain/travel"
	"github.com/laiyolobaru/backend/internal/domain/umkm"
	"github.com/laiyolobaru/backend/internal/domain/writer"
	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the gorm handle plus the pool underneath it
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

// Open connects to PostgreSQL, sizes the pool and pings the server. SQL is
// reported through sqlLogger.
func Open(ctx context.Context, cfg *config.DatabaseConfig, sqlLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 sqlLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	d, err := wrap(db)
	if err != nil {
		return nil, err
	}
	configurePool(d.pool, cfg)

	if err := d.Check(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return d, nil
}

func wrap(db *gorm.DB) (*Database, error) {
	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return &Database{DB: db, pool: pool}, nil
}

func configurePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// Check pings the server. It backs the database health check.
func (d *Database) Check(ctx context.Context) error {
	return d.pool.PingContext(ctx)
}

// PoolStats reports connection pool usage
func (d *Database) PoolStats() sql.DBStats {
	return d.pool.Stats()
}

// Close releases every pooled connection
func (d *Database) Close() error {
	return d.pool.Close()
}

// Models lists every persisted type. SQL migrations are authoritative in
// deployed environments; tests use this list with AutoMigrate.
func Models() []any {
	return []any{
		&identity.Admin{},
		&writer.Writer{},
		&article.Article{},
		&umkm.UMKM{},
		&travel.Category{},
		&travel.Travel{},
		&auditlog.Log{},
		&demography.VillageProfile{},
		&demography.DusunSummary{},
		&demography.PopulationStat{},
	}
}
