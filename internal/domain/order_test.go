package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeAddress = "123, Taman University"

func TestOrder_EndToEndBill(t *testing.T) {
	c := seededCatalog(t)
	rose, _ := c.ItemAt(1)

	o := NewCounterOrder(c, NewParty("Ali", "0123456789"), storeAddress)
	require.NoError(t, o.AddLine(rose, 5))

	assert.Equal(t, 15, rose.Stock())
	assert.Equal(t, 5, rose.UnitsSold())
	assert.Equal(t, "RM250.00", FormatRM(o.Total()))

	text := o.RenderBill()
	want := "=== Bill for Ali (InStore Order) ===\n" +
		"Contact: 0123456789\n" +
		"Store Address: 123, Taman University\n" +
		"\n" +
		"Rose Essence         x5   @ RM50.00 = RM250.00\n" +
		"\n" +
		"Total: RM250.00\n"
	assert.Equal(t, want, text)
	assert.Equal(t, OrderBilled, o.Status())

	revenue, units := c.Totals()
	assert.Equal(t, "RM250.00", FormatRM(revenue))
	assert.Equal(t, 5, units)
}

func TestOrder_RemoteHeader(t *testing.T) {
	c := seededCatalog(t)
	lavender, _ := c.ItemAt(2)

	o := NewRemoteOrder(c, NewParty("Mei", "011"), "7 Jalan Bunga")
	require.NoError(t, o.AddLine(lavender, 1))

	bill := o.Bill()
	assert.Equal(t, "Online", bill.Kind)
	assert.Equal(t, "Delivery Address", bill.AddressLabel)
	assert.Contains(t, o.RenderBill(), "=== Bill for Mei (Online Order) ===\nContact: 011\nDelivery Address: 7 Jalan Bunga\n")
}

func TestOrder_BillMergesLinesByName(t *testing.T) {
	c := seededCatalog(t)
	a, _ := c.ItemAt(1)
	b, _ := c.ItemAt(2)

	o := NewCounterOrder(c, NewParty("Ali", "012"), storeAddress)
	require.NoError(t, o.AddLine(a, 2))
	require.NoError(t, o.AddLine(b, 1))
	require.NoError(t, o.AddLine(a, 3))

	assert.Len(t, o.Lines(), 3)

	bill := o.Bill()
	require.Len(t, bill.Rows, 2)
	assert.Equal(t, "Rose Essence", bill.Rows[0].Name)
	assert.Equal(t, 5, bill.Rows[0].Quantity)
	assert.Equal(t, "RM250.00", FormatRM(bill.Rows[0].Subtotal))
	assert.Equal(t, "Lavender Bliss", bill.Rows[1].Name)
	assert.Equal(t, 1, bill.Rows[1].Quantity)
	assert.Equal(t, "RM310.00", FormatRM(bill.GrandTotal))
	assert.True(t, bill.GrandTotal.Equal(o.Total()))
}

func TestOrder_BillUsesCurrentPrice(t *testing.T) {
	c := seededCatalog(t)
	rose, _ := c.ItemAt(1)

	o := NewCounterOrder(c, NewParty("Ali", "012"), storeAddress)
	require.NoError(t, o.AddLine(rose, 2))
	require.NoError(t, rose.SetPrice(dec("55")))

	assert.Equal(t, "RM110.00", FormatRM(o.Bill().GrandTotal))
	assert.Equal(t, "RM100.00", FormatRM(rose.Revenue()))
}

func TestOrder_AddLineRejected(t *testing.T) {
	c := seededCatalog(t)
	rose, _ := c.ItemAt(1)
	foreign, _ := seededCatalog(t).ItemAt(1)

	o := NewCounterOrder(c, NewParty("Ali", "012"), storeAddress)

	assert.ErrorIs(t, o.AddLine(rose, 0), ErrInvalidArgument)
	assert.ErrorIs(t, o.AddLine(rose, -1), ErrInvalidArgument)
	assert.ErrorIs(t, o.AddLine(rose, 21), ErrInsufficientStock)
	assert.ErrorIs(t, o.AddLine(nil, 1), ErrInvalidArgument)
	assert.ErrorIs(t, o.AddLine(foreign, 1), ErrInvalidArgument)

	assert.Empty(t, o.Lines())
	assert.Equal(t, 20, rose.Stock())
	revenue, units := c.Totals()
	assert.True(t, revenue.IsZero())
	assert.Equal(t, 0, units)
}

func TestOrder_RenderIsIdempotentAndFinal(t *testing.T) {
	c := seededCatalog(t)
	rose, _ := c.ItemAt(1)

	o := NewCounterOrder(c, NewParty("Ali", "012"), storeAddress)
	require.NoError(t, o.AddLine(rose, 1))

	first := o.RenderBill()
	second := o.RenderBill()
	assert.Equal(t, first, second)
	assert.Equal(t, 19, rose.Stock())

	err := o.AddLine(rose, 1)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, 19, rose.Stock())
	assert.Len(t, o.Lines(), 1)
}

func TestOrder_EmptyBill(t *testing.T) {
	c := seededCatalog(t)
	o := NewCounterOrder(c, NewParty("Ali", "012"), storeAddress)

	assert.Equal(t, OrderOpen, o.Status())
	bill := o.Bill()
	assert.Empty(t, bill.Rows)
	assert.Contains(t, bill.Text(), "\nTotal: RM0.00\n")
	assert.Equal(t, OrderOpen, o.Status())
}

func TestOrder_CatalogUnitsSoldOverflow(t *testing.T) {
	c := NewCatalog()
	a, err := c.AddItem("A", dec("1"), math.MaxInt)
	require.NoError(t, err)
	b, err := c.AddItem("B", dec("1"), 3)
	require.NoError(t, err)

	o := NewCounterOrder(c, NewParty("Ali", "012"), storeAddress)
	require.NoError(t, o.AddLine(a, math.MaxInt))

	assert.ErrorIs(t, o.AddLine(b, 1), ErrInvalidArgument)
	assert.Equal(t, 3, b.Stock())
	_, units := c.Totals()
	assert.Equal(t, math.MaxInt, units)
}
