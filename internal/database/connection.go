// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brightcart/storefront/internal/config"
	"github.com/brightcart/storefront/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.LogLevel == "silent" {
		logLevel = logger.Silent
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services map to ConflictError.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("dsn", cfg.RedactedDSN()).Info("Database connection established")
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
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_stock ON products(category_id, in_stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// findByCustomer returns newest first; this is a contract, not a tweak.
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData populates the reference catalog used in development.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", Description: "Latest electronic devices and gadgets"},
		{Slug: "clothing", Name: "Clothing", Description: "Fashion and apparel for all occasions"},
		{Slug: "books", Name: "Books", Description: "Books across all genres and topics"},
	}

	for i := range categories {
		var count int64
		db.Model(&models.Category{}).Where("slug = ?", categories[i].Slug).Count(&count)
		if count == 0 {
			if err := db.Create(&categories[i]).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", categories[i].Slug, err)
			}
		} else {
			db.Where("slug = ?", categories[i].Slug).First(&categories[i])
		}
	}

	products := []models.Product{
		{Slug: "aurora-desk-lamp", Title: "Aurora Desk Lamp", Description: "Dimmable LED desk lamp", PriceCents: 4599, Currency: "USD", CategoryID: &categories[0].ID, InStock: true},
		{Slug: "field-notes-set", Title: "Field Notes Set", Description: "Three pocket notebooks", PriceCents: 1299, Currency: "USD", CategoryID: &categories[2].ID, InStock: true},
		{Slug: "merino-crew-sweater", Title: "Merino Crew Sweater", Description: "Midweight merino wool", PriceCents: 9800, Currency: "USD", CategoryID: &categories[1].ID, InStock: true},
	}

	for i := range products {
		var count int64
		db.Model(&models.Product{}).Where("slug = ?", products[i].Slug).Count(&count)
		if count == 0 {
			if err := db.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", products[i].Slug, err)
			}
		}
	}

	var demoCount int64
	db.Model(&models.Customer{}).Where("email = ?", "demo@example.com").Count(&demoCount)
	if demoCount == 0 {
		demo := &models.Customer{
			ExternalIdentityID: "demo_user_id",
			Email:              "demo@example.com",
			FirstName:          "Demo",
			LastName:           "User",
			Roles:              []string{"customer"},
		}
		if err := db.Create(demo).Error; err != nil {
			return fmt.Errorf("failed to seed demo customer: %w", err)
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}
