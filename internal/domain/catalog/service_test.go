package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/testutil"
)

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, r)
	return args.String(0), args.Error(1)
}

func newTestService(t *testing.T, images ImageStore) *Service {
	t.Helper()
	db := testutil.NewDB(t, &customer.Customer{}, &Item{}, &Review{})
	testutil.SeedCustomers(t, db, 1, 2)
	return NewService(db, DefaultFlashCatalog(), images, logger.Discard())
}

func addItem(t *testing.T, s *Service, name string, price int64, remaining int) *Item {
	t.Helper()
	item, err := s.AddItem(context.Background(), &CreateItemRequest{
		Name:          name,
		CurrentPrice:  price,
		PreviousPrice: price,
		Remaining:     remaining,
	}, nil)
	require.NoError(t, err)
	return item
}

func TestReconcileSeedsFlashProductsOnce(t *testing.T) {
	s := newTestService(t, nil)

	require.NoError(t, s.Reconcile())
	require.NoError(t, s.Reconcile())

	items, err := s.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 14)

	var spago Item
	require.NoError(t, s.db.Where("name = ?", "Spago").First(&spago).Error)
	assert.Equal(t, int64(400), spago.CurrentPrice)
	assert.Equal(t, int64(400), spago.PreviousPrice)
	assert.Equal(t, 10, spago.Remaining)
	assert.Equal(t, "images/1.jpg", spago.Image)
}

func TestReconcileReusesExistingRowByName(t *testing.T) {
	s := newTestService(t, nil)
	existing := addItem(t, s, "Bluetooth", 999, 2)

	require.NoError(t, s.Reconcile())

	entry, err := s.Lookup(6)
	require.NoError(t, err)
	assert.True(t, entry.IsFlash())
	assert.Equal(t, existing.ID, entry.ItemID())
	assert.Equal(t, int64(1000), entry.Price())
	assert.Equal(t, 2, entry.Remaining())
}

func TestLookup(t *testing.T) {
	s := newTestService(t, nil)
	require.NoError(t, s.Reconcile())
	lamp := addItem(t, s, "Desk lamp", 1500, 4)

	t.Run("flash id resolves to seeded entry", func(t *testing.T) {
		entry, err := s.Lookup(1)
		require.NoError(t, err)
		assert.Equal(t, KindSeeded, entry.Kind)
		assert.Equal(t, "Spago", entry.Name())
		assert.Equal(t, int64(400), entry.Price())
		assert.Equal(t, "images/1.jpg", entry.Image())
		assert.NotZero(t, entry.ItemID())
	})

	t.Run("item id resolves to persisted entry", func(t *testing.T) {
		entry, err := s.Lookup(lamp.ID)
		require.NoError(t, err)
		assert.Equal(t, KindPersisted, entry.Kind)
		assert.False(t, entry.IsFlash())
		assert.Equal(t, "Desk lamp", entry.Name())
		assert.Equal(t, DefaultImage, entry.Image())
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := s.Lookup(9999)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestLookupWithoutReconcileSeedsLazily(t *testing.T) {
	s := newTestService(t, nil)

	entry, err := s.Lookup(6)
	require.NoError(t, err)
	assert.True(t, entry.IsFlash())

	var count int64
	require.NoError(t, s.db.Model(&Item{}).Where("name = ?", "Bluetooth").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListItemsOrderedByDateAdded(t *testing.T) {
	s := newTestService(t, nil)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.db.Create(&Item{Name: "later", DateAdded: base.Add(time.Hour)}).Error)
	require.NoError(t, s.db.Create(&Item{Name: "earlier", DateAdded: base}).Error)

	items, err := s.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "earlier", items[0].Name)
	assert.Equal(t, "later", items[1].Name)
}

func TestAddItemValidation(t *testing.T) {
	s := newTestService(t, nil)

	tests := []struct {
		name string
		req  CreateItemRequest
	}{
		{"blank name", CreateItemRequest{Name: "  "}},
		{"negative current price", CreateItemRequest{Name: "a", CurrentPrice: -1}},
		{"negative previous price", CreateItemRequest{Name: "a", PreviousPrice: -1}},
		{"negative stock", CreateItemRequest{Name: "a", Remaining: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddItem(context.Background(), &tt.req, nil)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
}

func TestAddItemStoresUploadedImage(t *testing.T) {
	store := new(mockImageStore)
	s := newTestService(t, store)
	body := bytes.NewBufferString("png-bytes")

	store.On("Save", mock.Anything, "lamp.png", "image/png", body).Return("images/abc.png", nil)

	item, err := s.AddItem(context.Background(), &CreateItemRequest{Name: "Lamp", Image: "ignored.png"},
		&ImageUpload{Filename: "lamp.png", ContentType: "image/png", Body: body})
	require.NoError(t, err)
	assert.Equal(t, "images/abc.png", item.Image)
	store.AssertExpectations(t)
}

func TestAddItemUploadFailure(t *testing.T) {
	store := new(mockImageStore)
	s := newTestService(t, store)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket gone"))

	_, err := s.AddItem(context.Background(), &CreateItemRequest{Name: "Lamp"},
		&ImageUpload{Filename: "lamp.png", Body: bytes.NewReader(nil)})
	assert.True(t, apperr.Is(err, apperr.KindInternal))

	items, err := s.ListItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItemUploadWithoutStore(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.AddItem(context.Background(), &CreateItemRequest{Name: "Lamp"},
		&ImageUpload{Filename: "lamp.png", Body: bytes.NewReader(nil)})
	assert.True(t, apperr.Is(err, apperr.KindNotAllowed))
}

func TestSearch(t *testing.T) {
	s := newTestService(t, nil)
	require.NoError(t, s.Reconcile())
	addItem(t, s, "Spago deluxe", 800, 1)
	addItem(t, s, "100% cotton", 300, 1)
	addItem(t, s, "cotton_blend", 300, 1)

	for _, q := range []string{"spago", "SPAGO"} {
		t.Run(q, func(t *testing.T) {
			res, err := s.Search(q)
			require.NoError(t, err)

			require.Len(t, res.FlashItems, 1)
			assert.Equal(t, uint(1), res.FlashItems[0].ID)
			assert.Equal(t, "Spago", res.FlashItems[0].Name)
			assert.Equal(t, int64(400), res.FlashItems[0].Price)

			require.Len(t, res.Items, 1)
			assert.Equal(t, "Spago deluxe", res.Items[0].Name)
		})
	}

	t.Run("wildcards are literal", func(t *testing.T) {
		res, err := s.Search("%")
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "100% cotton", res.Items[0].Name)

		res, err = s.Search("_")
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "cotton_blend", res.Items[0].Name)
	})
}

func TestSearchKeepsStoreItemSharingFlashName(t *testing.T) {
	s := newTestService(t, nil)
	require.NoError(t, s.Reconcile())
	twin := addItem(t, s, "Spago", 650, 2)

	res, err := s.Search("spago")
	require.NoError(t, err)

	require.Len(t, res.FlashItems, 1)
	require.Len(t, res.Items, 1)
	assert.Equal(t, twin.ID, res.Items[0].ID)
	assert.Equal(t, int64(650), res.Items[0].CurrentPrice)

	entry, err := s.Lookup(twin.ID)
	require.NoError(t, err)
	assert.False(t, entry.IsFlash())
}

func TestItemDetail(t *testing.T) {
	s := newTestService(t, nil)
	require.NoError(t, s.Reconcile())
	lamp := addItem(t, s, "Desk lamp", 1500, 4)

	t.Run("flash entry has no reviews or similar items", func(t *testing.T) {
		detail, err := s.ItemDetail(1)
		require.NoError(t, err)
		assert.True(t, detail.Entry.IsFlash())
		assert.Empty(t, detail.Reviews)
		assert.Nil(t, detail.AverageRating)
		assert.Empty(t, detail.Similar)
	})

	t.Run("persisted entry", func(t *testing.T) {
		_, err := s.AddReview(1, lamp.ID, &ReviewRequest{Rating: 4})
		require.NoError(t, err)
		_, err = s.AddReview(2, lamp.ID, &ReviewRequest{Rating: 5, Comment: "  bright  "})
		require.NoError(t, err)

		detail, err := s.ItemDetail(lamp.ID)
		require.NoError(t, err)
		assert.Equal(t, DefaultImage, detail.Entry.Item.Image)
		require.Len(t, detail.Reviews, 2)
		assert.Equal(t, "bright", detail.Reviews[0].Comment)
		require.NotNil(t, detail.AverageRating)
		assert.InDelta(t, 4.5, *detail.AverageRating, 0.0001)
		assert.Len(t, detail.Similar, 6)
		for _, item := range detail.Similar {
			assert.NotEqual(t, lamp.ID, item.ID)
		}
	})
}
