package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is anything the outbox can carry. The routing key doubles as the
// event type on the wire.
type Event interface {
	GetEventID() uuid.UUID
	GetRoutingKey() string
}

type BaseEvent struct {
	EventID    uuid.UUID `json:"eventId"`
	routingKey string
}

func NewBaseEvent(routingKey string) BaseEvent {
	return BaseEvent{EventID: uuid.New(), routingKey: routingKey}
}

func (e BaseEvent) GetEventID() uuid.UUID { return e.EventID }
func (e BaseEvent) GetRoutingKey() string { return e.routingKey }

// =========== Catalog ===========

type ItemAddedEvent struct {
	BaseEvent
	ItemID        uuid.UUID       `json:"itemId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	OccurredAtUtc time.Time       `json:"occurredAtUtc"`
}

func NewItemAddedEvent(item *CatalogItem) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseEvent:     NewBaseEvent("ItemAdded"),
		ItemID:        item.id,
		Name:          item.name,
		Price:         item.unitPrice,
		StockQuantity: item.stock,
		OccurredAtUtc: time.Now().UTC(),
	}
}

// Stock adjustment reasons.
const (
	ReasonStockAdded   = "STOCK_ADDED"
	ReasonStockRemoved = "STOCK_REMOVED"
	ReasonStockSet     = "STOCK_SET"
)

type StockAdjustedEvent struct {
	BaseEvent
	ItemID        uuid.UUID `json:"itemId"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stockQuantity"`
	Reason        string    `json:"reason"`
	OccurredAtUtc time.Time `json:"occurredAtUtc"`
}

func NewStockAdjustedEvent(item *CatalogItem, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseEvent:     NewBaseEvent("StockAdjusted"),
		ItemID:        item.id,
		Name:          item.name,
		StockQuantity: item.stock,
		Reason:        reason,
		OccurredAtUtc: time.Now().UTC(),
	}
}

type PriceChangedEvent struct {
	BaseEvent
	ItemID        uuid.UUID       `json:"itemId"`
	Name          string          `json:"name"`
	OldPrice      decimal.Decimal `json:"oldPrice"`
	NewPrice      decimal.Decimal `json:"newPrice"`
	OccurredAtUtc time.Time       `json:"occurredAtUtc"`
}

func NewPriceChangedEvent(item *CatalogItem, oldPrice decimal.Decimal) *PriceChangedEvent {
	return &PriceChangedEvent{
		BaseEvent:     NewBaseEvent("PriceChanged"),
		ItemID:        item.id,
		Name:          item.name,
		OldPrice:      oldPrice,
		NewPrice:      item.unitPrice,
		OccurredAtUtc: time.Now().UTC(),
	}
}

// =========== Orders ===========

type SaleRecordedEvent struct {
	BaseEvent
	OrderID        uuid.UUID       `json:"orderId"`
	ItemID         uuid.UUID       `json:"itemId"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	StockRemaining int             `json:"stockRemaining"`
	OccurredAtUtc  time.Time       `json:"occurredAtUtc"`
}

func NewSaleRecordedEvent(orderID uuid.UUID, item *CatalogItem, qty int) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseEvent:      NewBaseEvent("SaleRecorded"),
		OrderID:        orderID,
		ItemID:         item.id,
		Name:           item.name,
		Quantity:       qty,
		UnitPrice:      item.unitPrice,
		StockRemaining: item.stock,
		OccurredAtUtc:  time.Now().UTC(),
	}
}

type BillIssuedLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type BillIssuedEvent struct {
	BaseEvent
	OrderID     uuid.UUID        `json:"orderId"`
	PartyName   string           `json:"partyName"`
	OrderKind   string           `json:"orderKind"`
	Lines       []BillIssuedLine `json:"lines"`
	GrandTotal  decimal.Decimal  `json:"grandTotal"`
	Location    string           `json:"location"`
	IssuedAtUtc time.Time        `json:"issuedAtUtc"`
}

func NewBillIssuedEvent(bill Bill, location string) *BillIssuedEvent {
	lines := make([]BillIssuedLine, 0, len(bill.Rows))
	for _, r := range bill.Rows {
		lines = append(lines, BillIssuedLine{Name: r.Name, Quantity: r.Quantity, Subtotal: r.Subtotal})
	}
	return &BillIssuedEvent{
		BaseEvent:   NewBaseEvent("BillIssued"),
		OrderID:     bill.OrderID,
		PartyName:   bill.PartyName,
		OrderKind:   bill.Kind,
		Lines:       lines,
		GrandTotal:  bill.GrandTotal,
		Location:    location,
		IssuedAtUtc: time.Now().UTC(),
	}
}
