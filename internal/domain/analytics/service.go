// internal/domain/analytics/service.go
package analytics

import (
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/domain/order"
	"gorm.io/gorm"
)

// LowStockThreshold is the remaining count at or below which an item counts as low on stock
const LowStockThreshold = 3

const topProductsLimit = 5

// Service computes the admin dashboard figures
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a new analytics service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

// DashboardStats represents overall dashboard statistics. Money is in whole rupees.
type DashboardStats struct {
	// Sales metrics
	TotalRevenue     int64 `json:"total_revenue"`
	RevenueToday     int64 `json:"revenue_today"`
	RevenueThisMonth int64 `json:"revenue_this_month"`
	AvgOrderValue    int64 `json:"avg_order_value"`

	// Order metrics
	TotalOrders    int64        `json:"total_orders"`
	OrdersToday    int64        `json:"orders_today"`
	OrdersByStatus []StatusData `json:"orders_by_status"`

	// Customer metrics
	TotalCustomers       int64   `json:"total_customers"`
	NewCustomersThisWeek int64   `json:"new_customers_this_week"`
	RepeatCustomerRate   float64 `json:"repeat_customer_rate"` // percentage of buyers with 2+ orders

	// Catalog metrics
	TotalItems      int64              `json:"total_items"`
	OutOfStockItems int64              `json:"out_of_stock_items"`
	LowStockItems   []LowStockData     `json:"low_stock_items"`
	TopProducts     []ProductSalesData `json:"top_products"`
}

// StatusData counts orders in one status
type StatusData struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Value  int64  `json:"value"`
}

// ProductSalesData aggregates order lines for one item
type ProductSalesData struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
	Revenue     int64  `json:"revenue"`
	OrderCount  int64  `json:"order_count"`
}

// LowStockData is an item about to sell out
type LowStockData struct {
	ItemID    uint   `json:"item_id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// GetDashboardStats retrieves overall dashboard statistics
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: []StatusData{},
		LowStockItems:  []LowStockData{},
		TopProducts:    []ProductSalesData{},
	}
	now := s.now().UTC()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	thisWeek := today.AddDate(0, 0, -int(today.Weekday()))
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	queries := []struct {
		name string
		dest interface{}
		sql  string
		args []interface{}
	}{
		{"total revenue", &stats.TotalRevenue, "SELECT COALESCE(SUM(total_amount), 0) FROM orders", nil},
		{"revenue today", &stats.RevenueToday, "SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE created_at >= ?", []interface{}{today}},
		{"revenue this month", &stats.RevenueThisMonth, "SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE created_at >= ?", []interface{}{thisMonth}},
		{"total orders", &stats.TotalOrders, "SELECT COUNT(*) FROM orders", nil},
		{"orders today", &stats.OrdersToday, "SELECT COUNT(*) FROM orders WHERE created_at >= ?", []interface{}{today}},
		{"total customers", &stats.TotalCustomers, "SELECT COUNT(*) FROM customer", nil},
		{"new customers", &stats.NewCustomersThisWeek, "SELECT COUNT(*) FROM customer WHERE date_joined >= ?", []interface{}{thisWeek}},
		{"total items", &stats.TotalItems, "SELECT COUNT(*) FROM item", nil},
		{"out of stock", &stats.OutOfStockItems, "SELECT COUNT(*) FROM item WHERE remaining <= 0", nil},
	}
	for _, q := range queries {
		if err := s.db.Raw(q.sql, q.args...).Scan(q.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", q.name, err)
		}
	}

	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / stats.TotalOrders
	}

	if err := s.ordersByStatus(stats); err != nil {
		return nil, err
	}
	if err := s.repeatCustomerRate(stats); err != nil {
		return nil, err
	}

	err := s.db.Raw(`SELECT id AS item_id, name, remaining FROM item
		WHERE remaining > 0 AND remaining <= ?
		ORDER BY remaining ASC, id ASC`, LowStockThreshold).
		Scan(&stats.LowStockItems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load low stock items: %w", err)
	}

	err = s.db.Raw(`SELECT product_id, MAX(name) AS product_name,
			SUM(quantity) AS total_sold, SUM(total_price) AS revenue,
			COUNT(DISTINCT order_id) AS order_count
		FROM order_items
		GROUP BY product_id
		ORDER BY total_sold DESC, product_id ASC
		LIMIT ?`, topProductsLimit).
		Scan(&stats.TopProducts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	return stats, nil
}

// ordersByStatus reports every status in lifecycle order, including empty ones
func (s *Service) ordersByStatus(stats *DashboardStats) error {
	var rows []StatusData
	err := s.db.Raw("SELECT status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS value FROM orders GROUP BY status").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to count orders by status: %w", err)
	}

	byStatus := make(map[string]StatusData, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}
	for _, status := range order.Statuses {
		row, ok := byStatus[string(status)]
		if !ok {
			row = StatusData{Status: string(status)}
		}
		stats.OrdersByStatus = append(stats.OrdersByStatus, row)
	}
	return nil
}

func (s *Service) repeatCustomerRate(stats *DashboardStats) error {
	var buyers, repeat int64
	if err := s.db.Raw("SELECT COUNT(DISTINCT customer_id) FROM orders").Scan(&buyers).Error; err != nil {
		return fmt.Errorf("failed to count buyers: %w", err)
	}
	err := s.db.Raw("SELECT COUNT(*) FROM (SELECT customer_id FROM orders GROUP BY customer_id HAVING COUNT(*) > 1) AS repeaters").
		Scan(&repeat).Error
	if err != nil {
		return fmt.Errorf("failed to count repeat customers: %w", err)
	}

	if buyers > 0 {
		stats.RepeatCustomerRate = float64(repeat) / float64(buyers) * 100
	}
	return nil
}
