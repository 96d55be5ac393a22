package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/testutil"
)

func TestRenderInvoiceHTML(t *testing.T) {
	cfg := testutil.Config()
	cfg.App.CompanyEmail = "billing@example.com"
	s := NewService(cfg)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }

	o := &order.Order{
		ID:          42,
		TotalAmount: 2400,
		Status:      order.OrderStatusPlaced,
		CreatedAt:   time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{Name: "Bluetooth", Quantity: 2, Price: 1000, TotalPrice: 2000},
			{Name: "Spago <Deluxe>", Quantity: 1, Price: 400, TotalPrice: 400},
		},
	}

	html, err := s.RenderInvoiceHTML(o, CustomerInfo{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "INV-000042")
	assert.Contains(t, body, "March 9, 2024")
	assert.Contains(t, body, "March 8, 2024")
	assert.Contains(t, body, "Order Placed")
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "₹2000.00")
	assert.Contains(t, body, "₹2400.00")
	assert.Contains(t, body, "Spago &lt;Deluxe&gt;")
	assert.Contains(t, body, "billing@example.com")
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-000001", InvoiceNumber(&order.Order{ID: 1}))
	assert.Equal(t, "INV-1234567", InvoiceNumber(&order.Order{ID: 1234567}))
}
