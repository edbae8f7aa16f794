package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	_, err := c.AddItem("Rose Essence", dec("50.00"), 20)
	require.NoError(t, err)
	_, err = c.AddItem("Lavender Bliss", dec("60.00"), 15)
	require.NoError(t, err)
	return c
}

func TestAddItem_Validation(t *testing.T) {
	c := seededCatalog(t)

	tests := []struct {
		name  string
		item  string
		price string
		stock int
		kind  error
	}{
		{"zero price", "Oud", "0", 1, ErrInvalidArgument},
		{"negative price", "Oud", "-5", 1, ErrInvalidArgument},
		{"negative stock", "Oud", "5", -1, ErrInvalidArgument},
		{"blank name", "   ", "5", 1, ErrInvalidArgument},
		{"duplicate", "Rose Essence", "55", 1, ErrDuplicateItem},
		{"duplicate after trim", "  Rose Essence ", "55", 1, ErrDuplicateItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddItem(tt.item, dec(tt.price), tt.stock)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, 2, c.Len())
		})
	}
}

func TestAddItem_AppendsInOrder(t *testing.T) {
	c := seededCatalog(t)

	item, err := c.AddItem(" Oud Noir ", dec("120"), 0)
	require.NoError(t, err)
	assert.Equal(t, "Oud Noir", item.Name())

	got, err := c.ItemAt(3)
	require.NoError(t, err)
	assert.Same(t, item, got)
	assert.False(t, got.InStock())
}

func TestItemAt_OutOfRange(t *testing.T) {
	c := seededCatalog(t)

	for _, pos := range []int{-1, 0, 3} {
		_, err := c.ItemAt(pos)
		assert.ErrorIs(t, err, ErrInvalidArgument, "position %d", pos)
	}
}

func TestFindByNameAndContains(t *testing.T) {
	c := seededCatalog(t)
	other := seededCatalog(t)

	rose, ok := c.FindByName("Rose Essence")
	require.True(t, ok)
	assert.True(t, c.Contains(rose))

	foreign, _ := other.FindByName("Rose Essence")
	assert.False(t, c.Contains(foreign))

	_, ok = c.FindByName("Nope")
	assert.False(t, ok)
}

func TestSalesSummary_OnlySoldItems(t *testing.T) {
	c := seededCatalog(t)

	summary := c.SalesSummary()
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.Equal(t, 0, summary.TotalUnitsSold)
	assert.Empty(t, summary.Items)

	o := NewCounterOrder(c, NewParty("Ali", "012"), "123, Taman University")
	lavender, _ := c.ItemAt(2)
	require.NoError(t, o.AddLine(lavender, 2))

	summary = c.SalesSummary()
	assert.Equal(t, "RM120.00", FormatRM(summary.TotalRevenue))
	assert.Equal(t, 2, summary.TotalUnitsSold)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Lavender Bliss", summary.Items[0].Name)
	assert.Equal(t, 2, summary.Items[0].UnitsSold)
}

func TestInventory_Snapshot(t *testing.T) {
	c := seededCatalog(t)

	rows := c.Inventory()
	require.Len(t, rows, 2)
	assert.Equal(t, InventoryRow{
		Position:  2,
		Name:      "Lavender Bliss",
		Price:     rows[1].Price,
		UnitsSold: 0,
		Stock:     15,
	}, rows[1])

	rose, _ := c.ItemAt(1)
	require.NoError(t, rose.SetStock(1))
	assert.Equal(t, 20, rows[0].Stock)
}
