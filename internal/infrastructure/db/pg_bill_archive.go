package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// PgBillArchive keeps a copy of every issued bill and its rows.
type PgBillArchive struct {
	db *sql.DB
}

func NewPgBillArchive(db *sql.DB) *PgBillArchive {
	return &PgBillArchive{db: db}
}

func (r *PgBillArchive) WriteBill(
	ctx context.Context,
	bill domain.Bill,
	text string,
) (string, error) {
	billID := uuid.New()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	q := `
        insert into billing_bills
        (id, order_id, party_name, contact, order_kind, address, grand_total, bill_text, issued_at_utc)
        values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `
	if _, err := tx.ExecContext(
		ctx, q,
		billID,
		bill.OrderID,
		bill.PartyName,
		bill.Contact,
		bill.Kind,
		bill.Address,
		bill.GrandTotal,
		text,
		time.Now().UTC(),
	); err != nil {
		return "", err
	}

	rq := `
        insert into billing_bill_rows
        (id, bill_id, position, item_name, quantity, unit_price, subtotal)
        values ($1,$2,$3,$4,$5,$6,$7)
    `
	for i, row := range bill.Rows {
		if _, err := tx.ExecContext(
			ctx, rq,
			uuid.New(), billID, i+1, row.Name, row.Quantity, row.UnitPrice, row.Subtotal,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return "billing_bills/" + billID.String(), nil
}
