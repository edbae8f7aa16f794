// Package seed builds the startup catalog, either from the built-in item set
// or from a YAML file:
//
//	items:
//	  - name: Rose Essence
//	    price: 50.00
//	    stock: 20
package seed

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

type File struct {
	Items []Item `yaml:"items"`
}

type Item struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Stock int    `yaml:"stock"`
}

// Default is the catalog the shop opens with when no seed file is given.
func Default() *File {
	return &File{Items: []Item{
		{Name: "Rose Essence", Price: "50.00", Stock: 20},
		{Name: "Lavender Bliss", Price: "60.00", Stock: 15},
	}}
}

// LoadFile loads and parses a YAML seed file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("seed file has no items")
	}
	for i := range f.Items {
		f.Items[i].Name = strings.TrimSpace(f.Items[i].Name)
	}
	return &f, nil
}

// Build creates a catalog holding the seed items in file order. Items go
// through Catalog.AddItem, so the same price, stock and name rules apply.
func (f *File) Build() (*domain.Catalog, error) {
	catalog := domain.NewCatalog()
	for i, it := range f.Items {
		price, err := decimal.NewFromString(strings.TrimSpace(it.Price))
		if err != nil {
			return nil, fmt.Errorf("seed item %d (%s): invalid price %q: %w", i+1, it.Name, it.Price, err)
		}
		if _, err := catalog.AddItem(it.Name, price, it.Stock); err != nil {
			return nil, fmt.Errorf("seed item %d (%s): %w", i+1, it.Name, err)
		}
	}
	return catalog, nil
}
