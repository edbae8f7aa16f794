package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

type OrderRequest struct {
	CustomerName    string
	Contact         string
	Online          bool
	DeliveryAddress string
}

// Receipt is what a successful checkout hands back to the console.
type Receipt struct {
	OrderID  uuid.UUID
	Bill     domain.Bill
	Text     string
	Location string
}

type CheckoutService struct {
	catalog      *domain.Catalog
	bills        domain.BillWriter
	outbox       OutboxWriter
	metrics      Metrics
	storeAddress string
}

func NewCheckoutService(
	catalog *domain.Catalog,
	bills domain.BillWriter,
	outbox OutboxWriter,
	metrics Metrics,
	storeAddress string,
) *CheckoutService {
	return &CheckoutService{
		catalog:      catalog,
		bills:        bills,
		outbox:       outbox,
		metrics:      metrics,
		storeAddress: storeAddress,
	}
}

func (s *CheckoutService) StartOrder(req OrderRequest) (*domain.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrInvalidArgument)
	}
	party := domain.NewParty(name, strings.TrimSpace(req.Contact))

	if req.Online {
		addr := strings.TrimSpace(req.DeliveryAddress)
		if addr == "" {
			return nil, fmt.Errorf("%w: delivery address is required for online orders", domain.ErrInvalidArgument)
		}
		return domain.NewRemoteOrder(s.catalog, party, addr), nil
	}
	return domain.NewCounterOrder(s.catalog, party, s.storeAddress), nil
}

// AddLine sells qty units of the item at the given 1-based catalog position.
func (s *CheckoutService) AddLine(ctx context.Context, order *domain.Order, position, qty int) error {
	item, err := s.catalog.ItemAt(position)
	if err != nil {
		s.metrics.SaleRejected(rejectReason(err))
		return err
	}

	price := item.Price()
	if err := order.AddLine(item, qty); err != nil {
		s.metrics.SaleRejected(rejectReason(err))
		return err
	}

	s.metrics.SaleRecorded(item.Name(), qty, price.Mul(decimal.NewFromInt(int64(qty))))
	s.metrics.StockLevel(item.Name(), item.Stock())
	enqueue(ctx, s.outbox, "CheckoutService", domain.NewSaleRecordedEvent(order.ID(), item, qty))
	return nil
}

// Checkout finalizes the order, persists its bill and announces it. When the
// bill cannot be written the receipt still carries the text so the caller can
// show it.
func (s *CheckoutService) Checkout(ctx context.Context, order *domain.Order) (Receipt, error) {
	if order.Status() != domain.OrderOpen {
		return Receipt{}, fmt.Errorf("%w: order %s is already billed", domain.ErrIllegalTransition, order.ID())
	}
	if len(order.Lines()) == 0 {
		return Receipt{}, fmt.Errorf("%w: order has no lines", domain.ErrInvalidArgument)
	}

	text := order.RenderBill()
	bill := order.Bill()
	receipt := Receipt{OrderID: order.ID(), Bill: bill, Text: text}

	location, err := s.bills.WriteBill(ctx, bill, text)
	if err != nil {
		return receipt, fmt.Errorf("write bill for order %s: %w", order.ID(), err)
	}
	receipt.Location = location

	s.metrics.BillIssued(bill.Kind, bill.GrandTotal)
	enqueue(ctx, s.outbox, "CheckoutService", domain.NewBillIssuedEvent(bill, location))
	return receipt, nil
}
