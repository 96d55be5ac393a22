package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/testutil"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, customerID uint, status order.OrderStatus, lines ...order.OrderItem) {
	t.Helper()
	var total int64
	for i := range lines {
		lines[i].TotalPrice = lines[i].Price * int64(lines[i].Quantity)
		total += lines[i].TotalPrice
	}
	require.NoError(t, db.Create(&order.Order{
		CustomerID:  customerID,
		TotalAmount: total,
		Status:      status,
		Items:       lines,
	}).Error)
}

func TestDashboardStats(t *testing.T) {
	db := testutil.NewDB(t, &customer.Customer{}, &catalog.Item{}, &order.Order{}, &order.OrderItem{}, &order.OrderStatusHistory{})

	require.NoError(t, db.Create(&[]customer.Customer{
		{Username: "alice", Email: "alice@example.com", Password: "x"},
		{Username: "bob", Email: "bob@example.com", Password: "x"},
	}).Error)
	require.NoError(t, db.Create(&[]catalog.Item{
		{Name: "Bluetooth", CurrentPrice: 1000, Remaining: 2},
		{Name: "Spago", CurrentPrice: 400, Remaining: 0},
		{Name: "Lamp", CurrentPrice: 750, Remaining: 20},
	}).Error)

	seedOrder(t, db, 1, order.OrderStatusPlaced, order.OrderItem{ProductID: 1, Name: "Bluetooth", Quantity: 2, Price: 1000})
	seedOrder(t, db, 1, order.OrderStatusShipped, order.OrderItem{ProductID: 2, Name: "Spago", Quantity: 1, Price: 400})
	seedOrder(t, db, 2, order.OrderStatusPlaced, order.OrderItem{ProductID: 1, Name: "Bluetooth", Quantity: 1, Price: 1000})

	stats, err := NewService(db).GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3400), stats.TotalRevenue)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1133), stats.AvgOrderValue)
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(1), stats.OutOfStockItems)
	assert.InDelta(t, 50.0, stats.RepeatCustomerRate, 0.001)

	require.Len(t, stats.OrdersByStatus, len(order.Statuses))
	assert.Equal(t, StatusData{Status: "Order Placed", Count: 2, Value: 3000}, stats.OrdersByStatus[0])
	assert.Equal(t, int64(0), stats.OrdersByStatus[1].Count)

	require.Len(t, stats.LowStockItems, 1)
	assert.Equal(t, "Bluetooth", stats.LowStockItems[0].Name)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Bluetooth", stats.TopProducts[0].ProductName)
	assert.Equal(t, int64(3), stats.TopProducts[0].TotalSold)
	assert.Equal(t, int64(2), stats.TopProducts[0].OrderCount)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	db := testutil.NewDB(t, &customer.Customer{}, &catalog.Item{}, &order.Order{}, &order.OrderItem{})

	stats, err := NewService(db).GetDashboardStats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.AvgOrderValue)
	assert.Zero(t, stats.RepeatCustomerRate)
	assert.Empty(t, stats.TopProducts)
}
