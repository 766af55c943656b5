package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresClient defines the interface for PostgreSQL database operations
type PostgresClient interface {
	// Migrate runs auto-migration for the given models
	Migrate(dst ...any) error
	// Ping checks the connection
	Ping(ctx context.Context) error
	// Transaction runs fn inside a transaction bound to ctx
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	// GetDB returns the underlying gorm.DB instance
	GetDB() *gorm.DB
	Close() error
}

type postgresClient struct {
	DB *gorm.DB
}

// NewPostgresClient connects using cfg and verifies the connection
func NewPostgresClient(ctx context.Context, cfg Config) (PostgresClient, error) {
	return open(ctx, postgres.Open(cfg.DSN()), cfg)
}

// NewFromConn wraps an existing connection, e.g. one created by sqlmock.
// Only the pool and debug settings of cfg are used.
func NewFromConn(ctx context.Context, conn *sql.DB, cfg Config) (PostgresClient, error) {
	return open(ctx, postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), cfg)
}

func open(ctx context.Context, dialector gorm.Dialector, cfg Config) (PostgresClient, error) {
	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logMode),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	client := &postgresClient{DB: db}
	if err := client.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return client, nil
}

// Migrate runs auto-migration for all models
func (c *postgresClient) Migrate(dst ...any) error {
	if err := c.DB.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (c *postgresClient) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

// Transaction commits when fn returns nil and rolls back otherwise
func (c *postgresClient) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.DB.WithContext(ctx).Transaction(fn)
}

// GetDB returns the underlying gorm.DB instance
func (c *postgresClient) GetDB() *gorm.DB {
	return c.DB
}

// Close closes the database connection
func (c *postgresClient) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
