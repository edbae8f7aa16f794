package billfile

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// FileName is the bill file name for a customer: the name with all
// whitespace removed, followed by _bill.txt.
func FileName(partyName string) string {
	compact := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == '/' || r == '\\':
			return '_'
		}
		return r
	}, partyName)
	return compact + "_bill.txt"
}

// Writer stores bills as text files in one directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

func (w *Writer) WriteBill(_ context.Context, bill domain.Bill, text string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create bill dir %s: %w", w.dir, err)
	}
	path := filepath.Join(w.dir, FileName(bill.PartyName))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write bill %s: %w", path, err)
	}
	return path, nil
}

// Chain writes to a primary writer and then to any archives. Only the primary
// decides success; archive failures are logged.
type Chain struct {
	primary  domain.BillWriter
	archives []domain.BillWriter
}

func NewChain(primary domain.BillWriter, archives ...domain.BillWriter) *Chain {
	return &Chain{primary: primary, archives: archives}
}

func (c *Chain) WriteBill(ctx context.Context, bill domain.Bill, text string) (string, error) {
	location, err := c.primary.WriteBill(ctx, bill, text)
	if err != nil {
		return "", err
	}
	for _, a := range c.archives {
		if where, err := a.WriteBill(ctx, bill, text); err != nil {
			log.Printf("BillChain: archive failed for orderId=%s: %v", bill.OrderID.String(), err)
		} else {
			log.Printf("BillChain: archived orderId=%s at %s", bill.OrderID.String(), where)
		}
	}
	return location, nil
}
