package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItem is a sellable product. Price and stock are changed by
// administrative actions; sales counters only move through RecordSale.
type CatalogItem struct {
	id           uuid.UUID
	name         string
	unitPrice    decimal.Decimal
	stock        int
	unitsSold    int
	revenue      decimal.Decimal
	updatedAtUtc time.Time
}

func newCatalogItem(name string, price decimal.Decimal, stock int) *CatalogItem {
	return &CatalogItem{
		id:           uuid.New(),
		name:         name,
		unitPrice:    price,
		stock:        stock,
		revenue:      decimal.Zero,
		updatedAtUtc: time.Now().UTC(),
	}
}

func (c *CatalogItem) ID() uuid.UUID            { return c.id }
func (c *CatalogItem) Name() string             { return c.name }
func (c *CatalogItem) Price() decimal.Decimal   { return c.unitPrice }
func (c *CatalogItem) Stock() int               { return c.stock }
func (c *CatalogItem) UnitsSold() int           { return c.unitsSold }
func (c *CatalogItem) Revenue() decimal.Decimal { return c.revenue }
func (c *CatalogItem) UpdatedAtUtc() time.Time  { return c.updatedAtUtc }
func (c *CatalogItem) InStock() bool            { return c.stock > 0 }
func (c *CatalogItem) CanSell(qty int) bool     { return qty > 0 && c.stock >= qty }

// RecordSale takes qty units out of stock at the current price and returns
// the amount charged. A failed sale leaves the item untouched.
func (c *CatalogItem) RecordSale(qty int) (decimal.Decimal, error) {
	if qty <= 0 {
		return decimal.Zero, fmt.Errorf("%w: sale quantity must be positive, got %d", ErrInvalidArgument, qty)
	}
	if qty > c.stock {
		return decimal.Zero, fmt.Errorf("%w: not enough stock for %s (available %d, requested %d)",
			ErrInsufficientStock, c.name, c.stock, qty)
	}
	if c.unitsSold > math.MaxInt-qty {
		return decimal.Zero, fmt.Errorf("%w: units sold for %s would overflow", ErrInvalidArgument, c.name)
	}

	amount := c.unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	c.unitsSold += qty
	c.revenue = c.revenue.Add(amount)
	c.stock -= qty
	if c.stock < 0 {
		c.stock = 0
	}
	c.touch()
	return amount, nil
}

func (c *CatalogItem) AddStock(qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: cannot add negative stock", ErrInvalidArgument)
	}
	if qty > math.MaxInt-c.stock {
		return fmt.Errorf("%w: adding %d to stock %d would overflow", ErrInvalidArgument, qty, c.stock)
	}
	c.stock += qty
	c.touch()
	return nil
}

func (c *CatalogItem) RemoveStock(qty int) error {
	if qty < 0 || qty > c.stock {
		return fmt.Errorf("%w: invalid stock removal of %d (available %d)", ErrInvalidArgument, qty, c.stock)
	}
	c.stock -= qty
	c.touch()
	return nil
}

// SetStock replaces the stock level; sales counters are not affected.
func (c *CatalogItem) SetStock(qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalidArgument)
	}
	c.stock = qty
	c.touch()
	return nil
}

// SetPrice replaces the unit price. Revenue already recorded keeps the old price.
func (c *CatalogItem) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)
	}
	c.unitPrice = price
	c.touch()
	return nil
}

func (c *CatalogItem) touch() {
	c.updatedAtUtc = time.Now().UTC()
}
