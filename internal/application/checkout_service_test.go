package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/db"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/metrics"
)

const testStore = "123, Taman University"

type recordingBillWriter struct {
	bills []domain.Bill
	texts []string
	err   error
}

func (w *recordingBillWriter) WriteBill(_ context.Context, bill domain.Bill, text string) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.bills = append(w.bills, bill)
	w.texts = append(w.texts, text)
	return "bills/" + bill.PartyName, nil
}

type failingOutbox struct{}

func (failingOutbox) Enqueue(context.Context, domain.Event) error {
	return errors.New("outbox down")
}

type fixture struct {
	catalog  *domain.Catalog
	outbox   *db.MemoryOutboxRepository
	bills    *recordingBillWriter
	metrics  *metrics.SalesMetrics
	checkout *CheckoutService
	inv      *InventoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := domain.NewCatalog()
	_, err := catalog.AddItem("Rose Essence", decimal.RequireFromString("50.00"), 20)
	require.NoError(t, err)
	_, err = catalog.AddItem("Lavender Bliss", decimal.RequireFromString("60.00"), 15)
	require.NoError(t, err)

	f := &fixture{
		catalog: catalog,
		outbox:  db.NewMemoryOutboxRepository(),
		bills:   &recordingBillWriter{},
		metrics: metrics.NewSalesMetrics("billing"),
	}
	writer := NewOutboxWriter(f.outbox)
	f.checkout = NewCheckoutService(catalog, f.bills, writer, f.metrics, testStore)
	f.inv = NewInventoryService(catalog, writer, f.metrics)
	return f
}

func (f *fixture) eventTypes() []string {
	var types []string
	for _, m := range f.outbox.All() {
		types = append(types, m.Type)
	}
	return types
}

func TestStartOrder(t *testing.T) {
	f := newFixture(t)

	order, err := f.checkout.StartOrder(OrderRequest{CustomerName: " Ali ", Contact: "012"})
	require.NoError(t, err)
	assert.Equal(t, "Ali", order.Party().Name())
	assert.Equal(t, "InStore", order.Kind().Kind())
	assert.Equal(t, testStore, order.Kind().Address())

	order, err = f.checkout.StartOrder(OrderRequest{CustomerName: "Mei", Online: true, DeliveryAddress: "7 Jalan Bunga"})
	require.NoError(t, err)
	assert.Equal(t, "Online", order.Kind().Kind())
	assert.Equal(t, "7 Jalan Bunga", order.Kind().Address())

	_, err = f.checkout.StartOrder(OrderRequest{CustomerName: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = f.checkout.StartOrder(OrderRequest{CustomerName: "Mei", Online: true})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCheckout_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.checkout.StartOrder(OrderRequest{CustomerName: "Ali", Contact: "012"})
	require.NoError(t, err)
	require.NoError(t, f.checkout.AddLine(ctx, order, 1, 5))

	receipt, err := f.checkout.Checkout(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, "bills/Ali", receipt.Location)
	assert.Equal(t, order.ID(), receipt.OrderID)
	assert.Contains(t, receipt.Text, "Total: RM250.00")
	assert.Equal(t, domain.OrderBilled, order.Status())

	require.Len(t, f.bills.texts, 1)
	assert.Equal(t, receipt.Text, f.bills.texts[0])

	assert.Equal(t, []string{"SaleRecorded", "BillIssued"}, f.eventTypes())
	var issued domain.BillIssuedEvent
	require.NoError(t, json.Unmarshal([]byte(f.outbox.All()[1].PayloadJSON), &issued))
	assert.Equal(t, "bills/Ali", issued.Location)
	assert.True(t, decimal.NewFromInt(250).Equal(issued.GrandTotal))

	assert.Equal(t, 5.0, testutil.ToFloat64(f.metrics.UnitsSold.WithLabelValues("Rose Essence")))
	assert.Equal(t, 250.0, testutil.ToFloat64(f.metrics.Revenue.WithLabelValues("Rose Essence")))
	assert.Equal(t, 15.0, testutil.ToFloat64(f.metrics.Stock.WithLabelValues("Rose Essence")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BillsIssued.WithLabelValues("InStore")))
}

func TestAddLine_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.checkout.StartOrder(OrderRequest{CustomerName: "Ali"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.checkout.AddLine(ctx, order, 3, 1), domain.ErrInvalidArgument)
	assert.ErrorIs(t, f.checkout.AddLine(ctx, order, 1, 0), domain.ErrInvalidArgument)
	assert.ErrorIs(t, f.checkout.AddLine(ctx, order, 2, 16), domain.ErrInsufficientStock)

	assert.Empty(t, order.Lines())
	assert.Empty(t, f.outbox.All())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.SalesRejected.WithLabelValues("invalid_argument")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SalesRejected.WithLabelValues("insufficient_stock")))
}

func TestCheckout_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.checkout.StartOrder(OrderRequest{CustomerName: "Ali"})
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, empty)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, domain.OrderOpen, empty.Status())

	order, err := f.checkout.StartOrder(OrderRequest{CustomerName: "Ali"})
	require.NoError(t, err)
	require.NoError(t, f.checkout.AddLine(ctx, order, 2, 1))
	_, err = f.checkout.Checkout(ctx, order)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, order)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.ErrorIs(t, f.checkout.AddLine(ctx, order, 2, 1), domain.ErrIllegalTransition)
	assert.Len(t, f.bills.texts, 1)
}

func TestCheckout_BillWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.bills.err = errors.New("disk full")
	ctx := context.Background()

	order, err := f.checkout.StartOrder(OrderRequest{CustomerName: "Ali"})
	require.NoError(t, err)
	require.NoError(t, f.checkout.AddLine(ctx, order, 1, 1))

	receipt, err := f.checkout.Checkout(ctx, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, receipt.Text, "Total: RM50.00")
	assert.Empty(t, receipt.Location)
	assert.Equal(t, domain.OrderBilled, order.Status())
	assert.Equal(t, []string{"SaleRecorded"}, f.eventTypes())
}

func TestCheckout_OutboxFailureDoesNotFailSale(t *testing.T) {
	catalog := domain.NewCatalog()
	_, err := catalog.AddItem("Rose Essence", decimal.NewFromInt(50), 2)
	require.NoError(t, err)
	bills := &recordingBillWriter{}
	svc := NewCheckoutService(catalog, bills, failingOutbox{}, metrics.NewSalesMetrics("billing"), testStore)
	ctx := context.Background()

	order, err := svc.StartOrder(OrderRequest{CustomerName: "Ali"})
	require.NoError(t, err)
	require.NoError(t, svc.AddLine(ctx, order, 1, 2))
	_, err = svc.Checkout(ctx, order)
	require.NoError(t, err)
	assert.Len(t, bills.bills, 1)
}
