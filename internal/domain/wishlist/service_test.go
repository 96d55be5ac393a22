package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/testutil"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *catalog.Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &customer.Customer{}, &catalog.Item{}, &catalog.Review{}, &Wishlist{})
	testutil.SeedCustomers(t, db, 1, 2, 3)
	catalogService := catalog.NewService(db, catalog.DefaultFlashCatalog(), nil, logger.Discard())
	require.NoError(t, catalogService.Reconcile())
	return NewService(db, catalogService), catalogService, db
}

func addItem(t *testing.T, c *catalog.Service, name string) *catalog.Item {
	t.Helper()
	item, err := c.AddItem(context.Background(), &catalog.CreateItemRequest{Name: name, CurrentPrice: 100, Remaining: 3}, nil)
	require.NoError(t, err)
	return item
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	s, c, _ := newTestService(t)
	lamp := addItem(t, c, "Desk lamp")

	before, err := s.IsSaved(1, lamp.ID)
	require.NoError(t, err)
	require.False(t, before)

	result, err := s.Toggle(1, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, Added, result)

	result, err = s.Toggle(1, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, Removed, result)

	after, err := s.IsSaved(1, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestToggleRejectsFlashAndUnknownItems(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.Toggle(1, 1)
	assert.True(t, apperr.Is(err, apperr.KindNotAllowed))

	_, err = s.Toggle(1, 5000)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAddIsIdempotent(t *testing.T) {
	s, c, db := newTestService(t)
	lamp := addItem(t, c, "Desk lamp")

	added, err := s.Add(1, lamp.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(1, lamp.ID)
	require.NoError(t, err)
	assert.False(t, added)

	var count int64
	require.NoError(t, db.Model(&Wishlist{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRemove(t *testing.T) {
	s, c, _ := newTestService(t)
	lamp := addItem(t, c, "Desk lamp")

	err := s.Remove(1, lamp.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = s.Add(1, lamp.ID)
	require.NoError(t, err)
	require.NoError(t, s.Remove(1, lamp.ID))
}

func TestListSkipsVanishedItemsAndIsPerCustomer(t *testing.T) {
	s, c, db := newTestService(t)
	lamp := addItem(t, c, "Desk lamp")
	mug := addItem(t, c, "Mug")

	_, err := s.Add(1, lamp.ID)
	require.NoError(t, err)
	_, err = s.Add(1, mug.ID)
	require.NoError(t, err)
	_, err = s.Add(2, mug.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&catalog.Item{}, lamp.ID).Error)

	items, err := s.List(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mug", items[0].Name)
	assert.Equal(t, catalog.DefaultImage, items[0].Image)

	items, err = s.List(3)
	require.NoError(t, err)
	assert.Empty(t, items)
}
