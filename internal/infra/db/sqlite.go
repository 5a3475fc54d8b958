// Package db provides database connection and management functionality.
package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/core/config"
	"github.com/expense-tracker/core/internal/domain/entity"
	"github.com/expense-tracker/core/internal/integration/persistence/model"
)

// Database wraps the GORM connection to the embedded sqlite store.
type Database struct {
	db *gorm.DB
}

// NewSQLiteConnection opens the on-device database file, creating it when
// absent. Pass ":memory:" for an ephemeral store.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer; serialize access at the pool level.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	slog.Info("Database opened", "path", cfg.Path)

	return &Database{
		db: db,
	}, nil
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// HealthCheck performs a health check on the database connection.
func (d *Database) HealthCheck() bool {
	sqlDB, err := d.db.DB()
	if err != nil {
		slog.Error("Failed to get sql.DB for health check", "error", err)
		return false
	}
	if err := sqlDB.Ping(); err != nil {
		slog.Error("Database health check failed", "error", err)
		return false
	}
	return true
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	slog.Info("Database closed")
	return nil
}

// Migrate creates the schema and seeds the reserved fallback categories.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(
		&model.TransactionModel{},
		&model.CategoryModel{},
		&model.PreferenceModel{},
		&model.BudgetAlertModel{},
	); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	for _, reserved := range entity.ReservedCategories() {
		reservedModel := model.CategoryFromEntity(reserved)
		result := d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(reservedModel)
		if result.Error != nil {
			return fmt.Errorf("failed to seed reserved category %d: %w", reserved.ID, result.Error)
		}
	}

	return nil
}
