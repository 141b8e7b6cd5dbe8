// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gramseva/resicert-backend/internal/config"
	"github.com/gramseva/resicert-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Application{},
		&models.RoleAssignment{},
		&models.ApplicationCounter{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The counter row must exist before the first insert can lock it.
	counter := models.ApplicationCounter{ID: 1, Next: models.FirstApplicationNumber}
	if err := db.Where(models.ApplicationCounter{ID: 1}).
		FirstOrCreate(&counter).Error; err != nil {
		return fmt.Errorf("failed to initialize application counter: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_applications_principal ON applications(principal)",
		"CREATE INDEX IF NOT EXISTS idx_applications_created ON applications(created DESC)",
		"CREATE INDEX IF NOT EXISTS idx_role_assignments_role ON role_assignments(role)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData bootstraps the first admin. No exposed operation can create
// an admin from an empty role map, so deployments name one principal through
// configuration; everyone else starts at the non-privileged baseline role.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Principal == "" {
		logrus.Warn("ADMIN_PRINCIPAL not set; no admin will be seeded")
		return nil
	}

	var count int64
	db.Model(&models.RoleAssignment{}).
		Where("principal = ?", cfg.Admin.Principal).Count(&count)
	if count > 0 {
		return nil
	}

	assignment := &models.RoleAssignment{
		Principal: cfg.Admin.Principal,
		Role:      models.RoleAdmin,
	}
	if err := db.Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to seed admin role: %w", err)
	}

	logrus.WithField("principal", cfg.Admin.Principal).Info("Seeded initial admin role")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
