package console

import (
	"context"
	"strings"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

const endOrder = -1

func (s *Session) customerMenu(ctx context.Context) error {
	for {
		s.printf("\n===== Customer Menu =====\n")
		s.printf("1. Make new order\n")
		s.printf("2. Logout\n")

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
			if err := s.makeOrder(ctx); err != nil {
				return err
			}
		case 2:
			s.printf("Logging out...\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *Session) makeOrder(ctx context.Context) error {
	var req application.OrderRequest
	var err error

	if req.CustomerName, err = s.prompt(ctx, "Enter customer name: "); err != nil {
		return err
	}
	if req.Contact, err = s.prompt(ctx, "Enter customer contact: "); err != nil {
		return err
	}

	for {
		kind, err := s.prompt(ctx, "Is this order Online or InStore? (O/I): ")
		if err != nil {
			return err
		}
		kind = strings.ToUpper(kind)
		if kind == "O" || kind == "I" {
			req.Online = kind == "O"
			break
		}
		s.printf("Invalid input. Please enter 'O' for Online or 'I' for InStore.\n")
	}
	if req.Online {
		if req.DeliveryAddress, err = s.prompt(ctx, "Enter delivery address: "); err != nil {
			return err
		}
	}

	order, err := s.checkout.StartOrder(req)
	if err != nil {
		s.printf("  %v\n", err)
		return nil
	}

	for {
		done, err := s.orderLine(ctx, order)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	if len(order.Lines()) == 0 {
		s.printf("No items ordered.\n")
		return nil
	}

	receipt, err := s.checkout.Checkout(ctx, order)
	if receipt.Text != "" {
		s.printf("\n%s", receipt.Text)
	}
	if err != nil {
		s.printf("Failed to write bill: %v\n", err)
		return nil
	}
	s.printf("Bill generated: %s\n", receipt.Location)
	return nil
}

// orderLine shows the catalog and takes one item selection. It reports
// done=true when the customer ends the order.
func (s *Session) orderLine(ctx context.Context, order *domain.Order) (bool, error) {
	s.printf("\nAvailable Perfumes:\n")
	for _, row := range s.inventory.Inventory() {
		s.printf("%d. %s (%s) - Stock: %d\n", row.Position, row.Name, domain.FormatRM(row.Price), row.Stock)
		if row.Stock <= 0 {
			s.printf("   * Out of stock *\n")
		}
	}

	num, ok, err := s.promptInt(ctx, "Enter perfume number to order (Enter -1 to end order): ")
	if err != nil {
		return false, err
	}
	if !ok {
		s.printf("Invalid input.\n")
		return false, nil
	}
	if num == endOrder {
		return true, nil
	}

	rows := s.inventory.Inventory()
	if num < 1 || num > len(rows) {
		s.printf("Invalid perfume number.\n")
		return false, nil
	}
	row := rows[num-1]
	if row.Stock <= 0 {
		s.printf("Sorry, %s is out of stock.\n", row.Name)
		return false, nil
	}

	for {
		qty, ok, err := s.promptInt(ctx, "Enter quantity: ")
		if err != nil {
			return false, err
		}
		if !ok {
			s.printf("Invalid input. Please enter a positive integer.\n")
			continue
		}
		if qty <= 0 {
			s.printf("Quantity must be more than 0.\n")
			continue
		}
		if qty > row.Stock {
			s.printf("Not enough stock. Available: %d\n", row.Stock)
			continue
		}
		if err := s.checkout.AddLine(ctx, order, num, qty); err != nil {
			s.printf("  %v\n", err)
		}
		return false, nil
	}
}
