// Package console is the interactive text front end of the shop: login,
// customer ordering and the administrator's sales and inventory screens.
// It reads one answer per line, so a session can be scripted through stdin.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/config"
)

type Session struct {
	in        io.Reader
	out       io.Writer
	lines     <-chan string
	checkout  *application.CheckoutService
	inventory *application.InventoryService
	customer  config.Credentials
	admin     config.Credentials
}

func NewSession(
	in io.Reader,
	out io.Writer,
	checkout *application.CheckoutService,
	inventory *application.InventoryService,
	customer, admin config.Credentials,
) *Session {
	return &Session{
		in:        in,
		out:       out,
		checkout:  checkout,
		inventory: inventory,
		customer:  customer,
		admin:     admin,
	}
}

// scanLines feeds input lines into a channel so reads can be abandoned when
// ctx ends. The channel is closed at end of input or once ctx is done; a
// Read already blocked in the underlying reader only returns with new input
// or when the reader is closed.
func scanLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Run drives the login menu until the user exits or input ends. It returns
// nil in both cases and ctx.Err() if the context is cancelled first. A
// session runs once.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = scanLines(ctx, s.in)

	s.printf("\nWelcome to MyPerfume Ordering and Billing System\n")
	err := s.loginMenu(ctx)
	if errors.Is(err, io.EOF) {
		s.printf("\nEnd of input, exiting...\n")
		return nil
	}
	return err
}

func (s *Session) loginMenu(ctx context.Context) error {
	for {
		s.printf("\n===== Login Menu =====\n")
		s.printf("1. Customer Login\n")
		s.printf("2. Admin Login\n")
		s.printf("3. Exit\n")

		choice, ok, err := s.promptInt(ctx, "Choose option: ")
		if err != nil {
			return err
		}
		if !ok {
			s.printf("Invalid input. Please enter a number.\n")
			continue
		}

		switch choice {
		case 1:
			granted, err := s.login(ctx, s.customer)
			if err != nil {
				return err
			}
			if !granted {
				s.printf("Invalid customer credentials!\n")
				continue
			}
			if err := s.customerMenu(ctx); err != nil {
				return err
			}
		case 2:
			granted, err := s.login(ctx, s.admin)
			if err != nil {
				return err
			}
			if !granted {
				s.printf("Invalid admin credentials!\n")
				continue
			}
			if err := s.adminMenu(ctx); err != nil {
				return err
			}
		case 3:
			s.printf("Exiting system...\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *Session) login(ctx context.Context, want config.Credentials) (bool, error) {
	user, err := s.prompt(ctx, "Enter username: ")
	if err != nil {
		return false, err
	}
	pass, err := s.prompt(ctx, "Enter password: ")
	if err != nil {
		return false, err
	}
	return user == want.Username && pass == want.Password, nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	s.printf("%s", label)
	line, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt reports ok=false when the answer is not a whole number.
func (s *Session) promptInt(ctx context.Context, label string) (int, bool, error) {
	answer, err := s.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil {
		return 0, false, nil
	}
	return n, true, nil
}
