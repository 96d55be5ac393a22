package gormdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/testutil"
)

func TestMigrateAndSeed(t *testing.T) {
	db := testutil.NewDB(t)
	m := NewMigration(db, logger.Discard())

	require.NoError(t, m.RunAutoMigrations())
	require.NoError(t, m.CreateIndexes())

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}

	catalogService := catalog.NewService(db, catalog.DefaultFlashCatalog(), nil, logger.Discard())
	customerService := customer.NewService(db, auth.NewPasswordManager(testutil.Config()), nil, logger.Discard())
	admin := config.AdminConfig{Username: "admin", Email: "admin@example.com", Password: "admin-pass"}

	// seeding twice must not duplicate rows
	for i := 0; i < 2; i++ {
		require.NoError(t, m.SeedInitialData(catalogService, customerService, admin))
	}

	var items int64
	require.NoError(t, db.Model(&catalog.Item{}).Count(&items).Error)
	assert.Equal(t, int64(len(catalogService.Flash().All())), items)

	var admins []customer.Customer
	require.NoError(t, db.Where("is_admin = ?", true).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)
}

func TestOwnedRowsHaveForeignKeys(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, NewMigration(db, logger.Discard()).RunAutoMigrations())

	tests := []struct {
		model    interface{}
		relation string
	}{
		{&cart.CartItem{}, "Customer"},
		{&cart.CartItem{}, "Item"},
		{&wishlist.Wishlist{}, "Customer"},
		{&wishlist.Wishlist{}, "Item"},
		{&catalog.Review{}, "Customer"},
		{&catalog.Review{}, "Item"},
		{&order.Order{}, "Customer"},
	}
	for _, tt := range tests {
		assert.True(t, db.Migrator().HasConstraint(tt.model, tt.relation), "%T.%s", tt.model, tt.relation)
	}

	// orphan rows are refused
	err := db.Create(&cart.CartItem{CustomerID: 404, ItemID: 404, ItemName: "ghost", Price: 1, Quantity: 1}).Error
	assert.Error(t, err)
	err = db.Create(&order.Order{CustomerID: 404, TotalAmount: 1, Status: order.OrderStatusPlaced}).Error
	assert.Error(t, err)
}

func TestSeedWithoutAdmin(t *testing.T) {
	db := testutil.NewDB(t, Models()...)
	m := NewMigration(db, logger.Discard())

	catalogService := catalog.NewService(db, catalog.DefaultFlashCatalog(), nil, logger.Discard())
	customerService := customer.NewService(db, auth.NewPasswordManager(testutil.Config()), nil, logger.Discard())
	require.NoError(t, m.SeedInitialData(catalogService, customerService, config.AdminConfig{}))

	var count int64
	require.NoError(t, db.Model(&customer.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := testutil.Config()
	cfg.Database.Driver = "mysql"

	_, err := NewConnection(cfg, logger.Discard())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLiteConnection(t *testing.T) {
	cfg := testutil.Config()
	cfg.Database.SQLitePath = t.TempDir() + "/shop.db"

	db, err := NewConnection(cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.NoError(t, db.Health(t.Context()))
}
