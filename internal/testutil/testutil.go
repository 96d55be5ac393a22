// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an isolated in-memory SQLite database and migrates the given models.
// The pool is pinned to one connection so every query sees the same memory database.
func NewDB(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...))
	}

	return db
}

// Config returns a configuration suitable for tests: sqlite, no redis, log email, cheap bcrypt
func Config() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "storefront-test",
			Version:     "test",
			Environment: "test",
			CompanyName: "Storefront",
		},
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Redis:    config.RedisConfig{Enabled: false},
		JWT: config.JWTConfig{
			Secret:            "test-secret-test-secret-test-secret",
			AccessTokenExpiry: time.Hour,
		},
		Session: config.SessionConfig{
			CookieName: "storefront_session",
			MaxAge:     time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost:         bcrypt.MinCost,
			RateLimitPerMinute: 1000,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
			CORSAllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		},
		External: config.ExternalConfig{
			Stripe: config.StripeConfig{Currency: "inr"},
			Email:  config.EmailConfig{Provider: "log", FromName: "Storefront", FromEmail: "noreply@example.com"},
			Storage: config.StorageConfig{
				Provider: "local",
			},
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

// SeedCustomers inserts bare customer rows with the given ids so rows that
// reference a customer satisfy their foreign keys.
func SeedCustomers(t testing.TB, db *gorm.DB, ids ...uint) {
	t.Helper()
	for _, id := range ids {
		row := map[string]interface{}{
			"id":          id,
			"username":    fmt.Sprintf("customer%d", id),
			"email":       fmt.Sprintf("customer%d@example.com", id),
			"password":    "x",
			"is_admin":    false,
			"date_joined": time.Now().UTC(),
		}
		require.NoError(t, db.Table("customer").Create(row).Error)
	}
}
