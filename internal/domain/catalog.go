package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog owns the sellable items and the running sales totals. Totals are
// moved only by Order.AddLine, together with the item's own counters.
type Catalog struct {
	items          []*CatalogItem
	totalRevenue   decimal.Decimal
	totalUnitsSold int
}

func NewCatalog() *Catalog {
	return &Catalog{totalRevenue: decimal.Zero}
}

// Items returns the items in display order. The slice is a copy.
func (c *Catalog) Items() []*CatalogItem {
	out := make([]*CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int { return len(c.items) }

// ItemAt looks an item up by its 1-based display position.
func (c *Catalog) ItemAt(position int) (*CatalogItem, error) {
	if position < 1 || position > len(c.items) {
		return nil, fmt.Errorf("%w: item number %d out of range 1..%d", ErrInvalidArgument, position, len(c.items))
	}
	return c.items[position-1], nil
}

func (c *Catalog) FindByName(name string) (*CatalogItem, bool) {
	for _, it := range c.items {
		if it.name == name {
			return it, true
		}
	}
	return nil, false
}

// Contains reports whether item is one of this catalog's entries.
func (c *Catalog) Contains(item *CatalogItem) bool {
	for _, it := range c.items {
		if it == item {
			return true
		}
	}
	return false
}

// AddItem appends a new item. Price must be strictly positive and names are unique.
func (c *Catalog) AddItem(name string, price decimal.Decimal, stock int) (*CatalogItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidArgument)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)
	}
	if price.IsZero() {
		return nil, fmt.Errorf("%w: price cannot be zero", ErrInvalidArgument)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidArgument)
	}
	if _, exists := c.FindByName(name); exists {
		return nil, fmt.Errorf("%w: %s is already in the catalog", ErrDuplicateItem, name)
	}

	item := newCatalogItem(name, price, stock)
	c.items = append(c.items, item)
	return item, nil
}

func (c *Catalog) Totals() (decimal.Decimal, int) {
	return c.totalRevenue, c.totalUnitsSold
}

func (c *Catalog) recordSale(amount decimal.Decimal, qty int) {
	c.totalRevenue = c.totalRevenue.Add(amount)
	c.totalUnitsSold += qty
}

// ItemSales is one row of the sales summary.
type ItemSales struct {
	Name      string
	UnitsSold int
	Revenue   decimal.Decimal
}

type SalesSummary struct {
	TotalRevenue   decimal.Decimal
	TotalUnitsSold int
	Items          []ItemSales
}

// SalesSummary lists the totals and every item that has sold at least one unit.
func (c *Catalog) SalesSummary() SalesSummary {
	summary := SalesSummary{
		TotalRevenue:   c.totalRevenue,
		TotalUnitsSold: c.totalUnitsSold,
		Items:          []ItemSales{},
	}
	for _, it := range c.items {
		if it.unitsSold > 0 {
			summary.Items = append(summary.Items, ItemSales{
				Name:      it.name,
				UnitsSold: it.unitsSold,
				Revenue:   it.revenue,
			})
		}
	}
	return summary
}

// InventoryRow is a snapshot of one item for the inventory listing.
type InventoryRow struct {
	Position  int
	Name      string
	Price     decimal.Decimal
	UnitsSold int
	Stock     int
}

func (c *Catalog) Inventory() []InventoryRow {
	rows := make([]InventoryRow, 0, len(c.items))
	for i, it := range c.items {
		rows = append(rows, InventoryRow{
			Position:  i + 1,
			Name:      it.name,
			Price:     it.unitPrice,
			UnitsSold: it.unitsSold,
			Stock:     it.stock,
		})
	}
	return rows
}
