package readstore

import (
	"context"
	"errors"

	"invoice-dashboard/internal/infra"
	"invoice-dashboard/internal/infra/db"
	"invoice-dashboard/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const searchInvoicesSQL = `
	SELECT
		invoices.id,
		invoices.customer_id,
		customers.name,
		customers.email,
		invoices.amount,
		invoices.status,
		invoices.date
	FROM invoices
	JOIN customers ON customers.id = invoices.customer_id
	WHERE
		customers.name ILIKE $1 OR
		customers.email ILIKE $1 OR
		invoices.amount::text ILIKE $1 OR
		invoices.status ILIKE $1
	ORDER BY invoices.date DESC, invoices.id
	LIMIT $2 OFFSET $3`

const findInvoiceByIDSQL = `
	SELECT
		invoices.id,
		invoices.customer_id,
		customers.name,
		customers.email,
		invoices.amount,
		invoices.status,
		invoices.date
	FROM invoices
	JOIN customers ON customers.id = invoices.customer_id
	WHERE invoices.id = $1`

type InvoiceReadStore struct {
	db db.DBTX
}

func NewInvoiceReadStore(dbtx db.DBTX) *InvoiceReadStore {
	return &InvoiceReadStore{db: dbtx}
}

func (r *InvoiceReadStore) Search(ctx context.Context, query string, limit, offset int) ([]queries.InvoiceView, error) {
	rows, err := r.db.Query(ctx, searchInvoicesSQL, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search invoices", err)
	}
	defer rows.Close()

	views := make([]queries.InvoiceView, 0, limit)
	for rows.Next() {
		var v queries.InvoiceView
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.CustomerName, &v.CustomerEmail, &v.AmountCents, &v.Status, &v.Date); err != nil {
			return nil, infra.WrapRepoErr("failed to scan invoice row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read invoice rows", err)
	}

	return views, nil
}

func (r *InvoiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.InvoiceView, error) {
	var v queries.InvoiceView
	err := r.db.QueryRow(ctx, findInvoiceByIDSQL, id).
		Scan(&v.ID, &v.CustomerID, &v.CustomerName, &v.CustomerEmail, &v.AmountCents, &v.Status, &v.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice by ID", err)
	}
	return &v, nil
}
