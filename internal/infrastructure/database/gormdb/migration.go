// internal/infrastructure/database/gormdb/migration.go
package gormdb

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&customer.Customer{},
		&catalog.Item{},
		&catalog.Review{},
		&cart.CartItem{},
		&wishlist.Wishlist{},
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},
	}
}

// Migration handles database migrations and seeding
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	for _, model := range Models() {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.WithField("models", len(Models())).Info("database auto-migrations completed")
	return nil
}

// CreateIndexes creates indexes the model tags don't express
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_review_item_created ON review(item_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_item_date_added ON item(date_added)",
	}

	failed := 0
	for _, ddl := range indexes {
		if err := m.db.Exec(ddl).Error; err != nil {
			m.logger.WithError(err).WithField("ddl", ddl).Warn("failed to create index")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d indexes failed", failed, len(indexes))
	}
	return nil
}

// SeedInitialData reconciles the flash catalog and, when configured, the bootstrap admin
func (m *Migration) SeedInitialData(catalogService *catalog.Service, customerService *customer.Service, admin config.AdminConfig) error {
	if err := catalogService.Reconcile(); err != nil {
		return fmt.Errorf("failed to reconcile flash catalog: %w", err)
	}

	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	c, err := customerService.EnsureAdmin(admin.Username, admin.Email, admin.Password)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	m.logger.WithField("customer_id", c.ID).Info("admin account ready")
	return nil
}
