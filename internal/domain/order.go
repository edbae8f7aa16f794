package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderOpen   OrderStatus = "OPEN"
	OrderBilled OrderStatus = "BILLED"
)

// OrderKind is the variant-specific part of an order: how it is labelled on
// the bill and which address goes in the header.
type OrderKind interface {
	Kind() string
	AddressLabel() string
	Address() string
}

// CounterOrder is an in-store purchase.
type CounterOrder struct {
	StoreAddress string
}

func (CounterOrder) Kind() string         { return "InStore" }
func (CounterOrder) AddressLabel() string { return "Store Address" }
func (o CounterOrder) Address() string    { return o.StoreAddress }

// RemoteOrder is an online purchase delivered to the customer.
type RemoteOrder struct {
	DeliveryAddress string
}

func (RemoteOrder) Kind() string         { return "Online" }
func (RemoteOrder) AddressLabel() string { return "Delivery Address" }
func (o RemoteOrder) Address() string    { return o.DeliveryAddress }

// Line references a catalog item; the order does not own the item.
type Line struct {
	Item     *CatalogItem
	Quantity int
}

type Order struct {
	id           uuid.UUID
	party        Party
	kind         OrderKind
	catalog      *Catalog
	lines        []Line
	status       OrderStatus
	createdAtUtc time.Time
}

func NewOrder(catalog *Catalog, party Party, kind OrderKind) *Order {
	return &Order{
		id:           uuid.New(),
		party:        party,
		kind:         kind,
		catalog:      catalog,
		status:       OrderOpen,
		createdAtUtc: time.Now().UTC(),
	}
}

func NewCounterOrder(catalog *Catalog, party Party, storeAddress string) *Order {
	return NewOrder(catalog, party, CounterOrder{StoreAddress: storeAddress})
}

func NewRemoteOrder(catalog *Catalog, party Party, deliveryAddress string) *Order {
	return NewOrder(catalog, party, RemoteOrder{DeliveryAddress: deliveryAddress})
}

func (o *Order) ID() uuid.UUID           { return o.id }
func (o *Order) Party() Party            { return o.party }
func (o *Order) Kind() OrderKind         { return o.kind }
func (o *Order) Status() OrderStatus     { return o.status }
func (o *Order) CreatedAtUtc() time.Time { return o.createdAtUtc }

// Lines returns a copy of the order lines in the order they were added.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// AddLine sells qty units of item into this order. The sale is validated
// and applied to the item before the line is appended, so a rejected sale
// leaves the order, the item and the catalog totals unchanged.
func (o *Order) AddLine(item *CatalogItem, qty int) error {
	if o.status != OrderOpen {
		return fmt.Errorf("%w: order %s is already billed", ErrIllegalTransition, o.id)
	}
	if item == nil || !o.catalog.Contains(item) {
		return fmt.Errorf("%w: item does not belong to this catalog", ErrInvalidArgument)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be more than 0", ErrInvalidArgument)
	}
	if o.catalog.totalUnitsSold > math.MaxInt-qty {
		return fmt.Errorf("%w: catalog units sold would overflow", ErrInvalidArgument)
	}

	amount, err := item.RecordSale(qty)
	if err != nil {
		return err
	}
	o.lines = append(o.lines, Line{Item: item, Quantity: qty})
	o.catalog.recordSale(amount, qty)
	return nil
}

// Total prices every line at the item's current price.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Item.unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// BillRow is one printed row: all lines for the same item name merged.
type BillRow struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type Bill struct {
	OrderID      uuid.UUID
	PartyName    string
	Contact      string
	Kind         string
	AddressLabel string
	Address      string
	Rows         []BillRow
	GrandTotal   decimal.Decimal
}

// Bill builds the bill from the current lines and prices without changing
// any state.
func (o *Order) Bill() Bill {
	b := Bill{
		OrderID:      o.id,
		PartyName:    o.party.name,
		Contact:      o.party.contact,
		Kind:         o.kind.Kind(),
		AddressLabel: o.kind.AddressLabel(),
		Address:      o.kind.Address(),
		Rows:         []BillRow{},
		GrandTotal:   decimal.Zero,
	}

	index := make(map[string]int)
	for _, l := range o.lines {
		name := l.Item.name
		if i, seen := index[name]; seen {
			b.Rows[i].Quantity += l.Quantity
			continue
		}
		index[name] = len(b.Rows)
		b.Rows = append(b.Rows, BillRow{
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: l.Item.unitPrice,
		})
	}

	for i := range b.Rows {
		r := &b.Rows[i]
		r.Subtotal = r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
		b.GrandTotal = b.GrandTotal.Add(r.Subtotal)
	}
	return b
}

// RenderBill finalizes the order and returns the bill text. Calling it again
// returns the same text.
func (o *Order) RenderBill() string {
	o.status = OrderBilled
	return o.Bill().Text()
}

func (b Bill) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Bill for %s (%s Order) ===\n", b.PartyName, b.Kind)
	fmt.Fprintf(&sb, "Contact: %s\n", b.Contact)
	fmt.Fprintf(&sb, "%s: %s\n", b.AddressLabel, b.Address)
	sb.WriteString("\n")
	for _, r := range b.Rows {
		fmt.Fprintf(&sb, "%-20s x%-3d @ %s = %s\n", r.Name, r.Quantity, FormatRM(r.UnitPrice), FormatRM(r.Subtotal))
	}
	fmt.Fprintf(&sb, "\nTotal: %s\n", FormatRM(b.GrandTotal))
	return sb.String()
}
