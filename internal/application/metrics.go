package application

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// Metrics receives sales and stock observations from the services.
type Metrics interface {
	SaleRecorded(item string, qty int, amount decimal.Decimal)
	SaleRejected(reason string)
	BillIssued(kind string, total decimal.Decimal)
	StockLevel(item string, stock int)
}

// rejectReason maps a domain error onto a low-cardinality label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "other"
	}
}

// enqueue writes ev to the outbox. The state change it describes has already
// happened, so a failure is logged rather than returned.
func enqueue(ctx context.Context, outbox OutboxWriter, component string, ev domain.Event) {
	if err := outbox.Enqueue(ctx, ev); err != nil {
		log.Printf("%s: failed to enqueue %s eventId=%s: %v",
			component, ev.GetRoutingKey(), ev.GetEventID().String(), err)
	}
}
