package console

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

func (s *Session) adminMenu(ctx context.Context) error {
	for {
		s.printf("\n===== Admin Menu =====\n")
		s.printf("1. View total sales\n")
		s.printf("2. View inventory\n")
		s.printf("3. Logout\n")

		choice, ok, err := s.promptInt(ctx, "Enter choice: ")
		if err != nil {
			return err
		}
		if !ok {
			s.printf("Invalid input. Please enter a number.\n")
			continue
		}

		switch choice {
		case 1:
			s.viewSales()
		case 2:
			if err := s.manageInventory(ctx); err != nil {
				return err
			}
		case 3:
			s.printf("Logging out...\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *Session) viewSales() {
	summary := s.inventory.SalesSummary()
	s.printf("Total sales: %s\n", domain.FormatRM(summary.TotalRevenue))
	s.printf("Total perfumes sold: %d\n", summary.TotalUnitsSold)
	for _, it := range summary.Items {
		s.printf("%s - Units Sold: %d, Total Sales: %s\n", it.Name, it.UnitsSold, domain.FormatRM(it.Revenue))
	}
}

func (s *Session) printInventory() {
	s.printf("\n=== Perfume Inventory ===\n")
	s.printf("%-4s %-20s %-10s %-15s %-10s\n", "No.", "Name", "Price", "Quantity Sold", "Stock Left")
	for _, row := range s.inventory.Inventory() {
		s.printf("%-4d %-20s RM%-8s %-15d %-10d\n",
			row.Position, row.Name, row.Price.StringFixed(2), row.UnitsSold, row.Stock)
	}
}

func (s *Session) manageInventory(ctx context.Context) error {
	for {
		s.printInventory()
		s.printf("\nInventory Management Options:\n")
		s.printf("1. Manage existing perfume\n")
		s.printf("2. Add new perfume\n")
		s.printf("3. Back to main menu\n\n")

		opt, ok, err := s.promptInt(ctx, "Choose option: ")
		if err != nil {
			return err
		}
		if !ok {
			s.printf("Invalid input! Please enter a number.\n")
			continue
		}

		switch opt {
		case 1:
			if err := s.manageItem(ctx); err != nil {
				return err
			}
		case 2:
			if err := s.addItem(ctx); err != nil {
				return err
			}
		case 3:
			return nil
		default:
			s.printf("Invalid option.\n")
		}
	}
}

func (s *Session) manageItem(ctx context.Context) error {
	num, ok, err := s.promptInt(ctx, "Enter perfume number: ")
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Invalid input! Please enter a valid number.\n")
		return nil
	}
	if num < 1 || num > len(s.inventory.Inventory()) {
		s.printf("Invalid perfume number.\n")
		return nil
	}

	s.printf("1. Add stock\n")
	s.printf("2. Remove stock\n")
	s.printf("3. Set new stock quantity\n")
	s.printf("4. Update price\n\n")
	action, ok, err := s.promptInt(ctx, "Choose action: ")
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Invalid input! Please enter a valid number.\n")
		return nil
	}

	var stockOp func(context.Context, int, int) (*domain.CatalogItem, error)
	var label string
	switch action {
	case 1:
		stockOp, label = s.inventory.AddStock, "Enter quantity to add: "
	case 2:
		stockOp, label = s.inventory.RemoveStock, "Enter quantity to remove: "
	case 3:
		stockOp, label = s.inventory.SetStock, "Enter new stock quantity: "
	case 4:
		return s.updatePrice(ctx, num)
	default:
		s.printf("Invalid action.\n")
		return nil
	}

	qty, ok, err := s.promptInt(ctx, label)
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Invalid input! Please enter the correct type.\n")
		return nil
	}
	item, err := stockOp(ctx, num, qty)
	if err != nil {
		s.printf("  %v\n", err)
		return nil
	}
	s.printf("Stock updated. New stock: %d\n", item.Stock())
	return nil
}

func (s *Session) updatePrice(ctx context.Context, num int) error {
	answer, err := s.prompt(ctx, "Enter new price: RM")
	if err != nil {
		return err
	}
	price, convErr := decimal.NewFromString(answer)
	if convErr != nil {
		s.printf("Invalid input! Please enter the correct type.\n")
		return nil
	}
	item, err := s.inventory.SetPrice(ctx, num, price)
	if err != nil {
		s.printf("  %v\n", err)
		return nil
	}
	s.printf("Price updated. New price: %s\n", domain.FormatRM(item.Price()))
	return nil
}

func (s *Session) addItem(ctx context.Context) error {
	name, err := s.prompt(ctx, "Enter perfume name: ")
	if err != nil {
		return err
	}

	var price decimal.Decimal
	for {
		answer, err := s.prompt(ctx, "Enter perfume price: ")
		if err != nil {
			return err
		}
		p, convErr := decimal.NewFromString(answer)
		switch {
		case convErr != nil:
			s.printf("Invalid input. Please enter a valid number.\n")
			continue
		case p.IsNegative():
			s.printf("Price cannot be negative.\n")
			continue
		case p.IsZero():
			s.printf("Price cannot be zero.\n")
			continue
		}
		price = p
		break
	}

	var stock int
	for {
		n, ok, err := s.promptInt(ctx, "Enter stock quantity: ")
		if err != nil {
			return err
		}
		if !ok {
			s.printf("Invalid input. Please enter a valid integer.\n")
			continue
		}
		if n < 0 {
			s.printf("Stock cannot be negative.\n")
			continue
		}
		stock = n
		break
	}

	if _, err := s.inventory.AddItem(ctx, name, price, stock); err != nil {
		s.printf("  %v\n", err)
		return nil
	}
	s.printf("Perfume added.\n")
	return nil
}
