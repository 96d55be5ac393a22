package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFlashCatalog(t *testing.T) {
	c := DefaultFlashCatalog()

	all := c.All()
	require.Len(t, all, 14)
	assert.Equal(t, uint(1), all[0].ID)
	assert.Equal(t, uint(14), all[13].ID)

	spago, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, FlashDescriptor{ID: 1, Name: "Spago", Price: 400, Image: "images/1.jpg", Stock: 10}, spago)

	bluetooth, ok := c.Get(6)
	require.True(t, ok)
	assert.Equal(t, "Bluetooth", bluetooth.Name)
	assert.Equal(t, int64(1000), bluetooth.Price)

	_, ok = c.Get(15)
	assert.False(t, ok)
}

func TestFlashSearchIgnoresCase(t *testing.T) {
	c := DefaultFlashCatalog()

	for _, q := range []string{"spago", "SPAGO", "  Spa "} {
		t.Run(q, func(t *testing.T) {
			got := c.Search(q)
			require.Len(t, got, 1)
			assert.Equal(t, uint(1), got[0].ID)
			assert.Equal(t, "Spago", got[0].Name)
			assert.Equal(t, int64(400), got[0].Price)
		})
	}

	assert.Empty(t, c.Search("no such thing"))
	assert.Len(t, c.Search("smart"), 3)
}

func TestParseFlashCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "products:\n  - name: A\n    price: 1\n"},
		{"missing name", "products:\n  - id: 1\n    price: 1\n"},
		{"negative price", "products:\n  - id: 1\n    name: A\n    price: -1\n"},
		{"duplicate id", "products:\n  - id: 1\n    name: A\n  - id: 1\n    name: B\n"},
		{"duplicate name", "products:\n  - id: 1\n    name: A\n  - id: 2\n    name: A\n"},
		{"not yaml", "products: [oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlashCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseFlashCatalogStockDefaults(t *testing.T) {
	c, err := ParseFlashCatalog([]byte("default_stock: 3\nproducts:\n  - id: 2\n    name: B\n  - id: 1\n    name: A\n    stock: 7\n"))
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, 7, all[0].Stock)
	assert.Equal(t, 3, all[1].Stock)
}

func TestLoadFlashCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - id: 9\n    name: Kettle\n    price: 750\n"), 0o600))

	c, err := LoadFlashCatalog(path)
	require.NoError(t, err)

	d, ok := c.Get(9)
	require.True(t, ok)
	assert.Equal(t, fallbackFlashStock, d.Stock)

	_, err = LoadFlashCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
