// internal/domain/catalog/flash.go
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed flash_catalog.yaml
var defaultFlashCatalog []byte

const fallbackFlashStock = 10

// FlashDescriptor is one product of the flash sale
type FlashDescriptor struct {
	ID    uint   `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price int64  `yaml:"price" json:"price"`
	Image string `yaml:"image" json:"image"`
	Stock int    `yaml:"stock" json:"stock"`
}

type flashFile struct {
	DefaultStock int               `yaml:"default_stock"`
	Products     []FlashDescriptor `yaml:"products"`
}

// FlashCatalog is the read-only flash sale table
type FlashCatalog struct {
	ordered []FlashDescriptor
	byID    map[uint]FlashDescriptor
	byName  map[string]FlashDescriptor
}

// LoadFlashCatalog reads the flash catalog from path, or the embedded default when path is empty
func LoadFlashCatalog(path string) (*FlashCatalog, error) {
	if path == "" {
		return ParseFlashCatalog(defaultFlashCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flash catalog: %w", err)
	}
	return ParseFlashCatalog(data)
}

// DefaultFlashCatalog returns the embedded flash catalog
func DefaultFlashCatalog() *FlashCatalog {
	c, err := ParseFlashCatalog(defaultFlashCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded flash catalog is invalid: %v", err))
	}
	return c
}

// ParseFlashCatalog decodes and validates a YAML flash catalog
func ParseFlashCatalog(data []byte) (*FlashCatalog, error) {
	var file flashFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse flash catalog: %w", err)
	}

	defaultStock := file.DefaultStock
	if defaultStock <= 0 {
		defaultStock = fallbackFlashStock
	}

	c := &FlashCatalog{
		byID:   make(map[uint]FlashDescriptor, len(file.Products)),
		byName: make(map[string]FlashDescriptor, len(file.Products)),
	}

	for _, p := range file.Products {
		p.Name = strings.TrimSpace(p.Name)
		switch {
		case p.ID == 0:
			return nil, fmt.Errorf("flash product %q has no id", p.Name)
		case p.Name == "":
			return nil, fmt.Errorf("flash product %d has no name", p.ID)
		case p.Price < 0:
			return nil, fmt.Errorf("flash product %d has a negative price", p.ID)
		case p.Stock < 0:
			return nil, fmt.Errorf("flash product %d has negative stock", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate flash product id %d", p.ID)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate flash product name %q", p.Name)
		}
		if p.Stock == 0 {
			p.Stock = defaultStock
		}

		c.byID[p.ID] = p
		c.byName[p.Name] = p
		c.ordered = append(c.ordered, p)
	}

	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })
	return c, nil
}

// Get returns the descriptor with the given id
func (c *FlashCatalog) Get(id uint) (FlashDescriptor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByName returns the descriptor with the given exact name
func (c *FlashCatalog) ByName(name string) (FlashDescriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// All returns every descriptor ordered by id
func (c *FlashCatalog) All() []FlashDescriptor {
	out := make([]FlashDescriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Search returns descriptors whose name contains query, ignoring case
func (c *FlashCatalog) Search(query string) []FlashDescriptor {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []FlashDescriptor{}
	for _, d := range c.ordered {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			out = append(out, d)
		}
	}
	return out
}
