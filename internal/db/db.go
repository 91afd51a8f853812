package db

import (
	"fmt"
	"strings"
	"time"

	"mixup/internal/config"
	"mixup/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Dialector picks the gorm driver for a database URL. postgres:// and
// postgresql:// URLs use postgres; sqlite://, file: and *.db paths use sqlite.
func Dialector(url string) (gorm.Dialector, error) {
	trimmed := strings.TrimSpace(url)
	lower := strings.ToLower(trimmed)
	switch {
	case trimmed == "":
		return nil, fmt.Errorf("database URL must not be empty")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgres.Open(trimmed), nil
	case strings.HasPrefix(lower, "sqlite://"):
		return sqlite.Open(trimmed[len("sqlite://"):]), nil
	case strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return sqlite.Open(trimmed), nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme in %q", trimmed)
	}
}

// Initialize opens the database named by cfg.URL and sizes its pool.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.URL)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return db, nil
}

// AutoMigrate creates or updates the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	return db.AutoMigrate(models.AllModels()...)
}

// Configure opens the database and migrates the schema.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(database); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return database, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
