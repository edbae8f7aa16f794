package db

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaSQL = `
create table if not exists billing_outbox_messages (
    seq              bigserial   not null,
    id               uuid primary key,
    type             text        not null,
    payload_json     jsonb       not null,
    occurred_at_utc  timestamptz not null,
    retry_count      integer     not null default 0,
    processed_at_utc timestamptz
);

alter table billing_outbox_messages
    add column if not exists seq bigserial not null;

drop index if exists idx_billing_outbox_pending;
create index if not exists idx_billing_outbox_pending_seq
    on billing_outbox_messages (seq)
    where processed_at_utc is null;

create table if not exists billing_bills (
    id            uuid primary key,
    order_id      uuid          not null unique,
    party_name    text          not null,
    contact       text          not null,
    order_kind    text          not null,
    address       text          not null,
    grand_total   numeric(12,2) not null,
    bill_text     text          not null,
    issued_at_utc timestamptz   not null
);

create table if not exists billing_bill_rows (
    id         uuid primary key,
    bill_id    uuid          not null references billing_bills(id) on delete cascade,
    position   integer       not null,
    item_name  text          not null,
    quantity   integer       not null,
    unit_price numeric(12,2) not null,
    subtotal   numeric(12,2) not null
);
`

// EnsureSchema creates the outbox and bill archive tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply billing schema: %w", err)
	}
	return nil
}
