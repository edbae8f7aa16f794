package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// InventoryService carries out administrator actions on the catalog.
type InventoryService struct {
	catalog *domain.Catalog
	outbox  OutboxWriter
	metrics Metrics
}

func NewInventoryService(
	catalog *domain.Catalog,
	outbox OutboxWriter,
	metrics Metrics,
) *InventoryService {
	return &InventoryService{
		catalog: catalog,
		outbox:  outbox,
		metrics: metrics,
	}
}

func (s *InventoryService) AddItem(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.CatalogItem, error) {
	item, err := s.catalog.AddItem(name, price, stock)
	if err != nil {
		return nil, err
	}
	s.metrics.StockLevel(item.Name(), item.Stock())
	enqueue(ctx, s.outbox, "InventoryService", domain.NewItemAddedEvent(item))
	return item, nil
}

func (s *InventoryService) AddStock(ctx context.Context, position, qty int) (*domain.CatalogItem, error) {
	return s.adjust(ctx, position, domain.ReasonStockAdded, func(it *domain.CatalogItem) error {
		return it.AddStock(qty)
	})
}

func (s *InventoryService) RemoveStock(ctx context.Context, position, qty int) (*domain.CatalogItem, error) {
	return s.adjust(ctx, position, domain.ReasonStockRemoved, func(it *domain.CatalogItem) error {
		return it.RemoveStock(qty)
	})
}

func (s *InventoryService) SetStock(ctx context.Context, position, qty int) (*domain.CatalogItem, error) {
	return s.adjust(ctx, position, domain.ReasonStockSet, func(it *domain.CatalogItem) error {
		return it.SetStock(qty)
	})
}

func (s *InventoryService) SetPrice(ctx context.Context, position int, price decimal.Decimal) (*domain.CatalogItem, error) {
	item, err := s.catalog.ItemAt(position)
	if err != nil {
		return nil, err
	}
	old := item.Price()
	if err := item.SetPrice(price); err != nil {
		return nil, err
	}
	enqueue(ctx, s.outbox, "InventoryService", domain.NewPriceChangedEvent(item, old))
	return item, nil
}

func (s *InventoryService) SalesSummary() domain.SalesSummary {
	return s.catalog.SalesSummary()
}

func (s *InventoryService) Inventory() []domain.InventoryRow {
	return s.catalog.Inventory()
}

func (s *InventoryService) adjust(
	ctx context.Context,
	position int,
	reason string,
	apply func(*domain.CatalogItem) error,
) (*domain.CatalogItem, error) {
	item, err := s.catalog.ItemAt(position)
	if err != nil {
		return nil, err
	}
	if err := apply(item); err != nil {
		return nil, err
	}
	s.metrics.StockLevel(item.Name(), item.Stock())
	enqueue(ctx, s.outbox, "InventoryService", domain.NewStockAdjustedEvent(item, reason))
	return item, nil
}
