package repository

import (
	"context"
	"time"

	"invoice-dashboard/internal/domain/invoice"
	"invoice-dashboard/internal/infra"
	"invoice-dashboard/internal/infra/db"

	"github.com/google/uuid"
)

const (
	createInvoiceSQL = `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	updateInvoiceSQL = `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4`

	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1`
)

type InvoiceRepository struct{}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

func (r *InvoiceRepository) Create(ctx context.Context, dbtx db.DBTX, draft invoice.Draft, date time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createInvoiceSQL,
		draft.CustomerID(),
		draft.Amount().Cents(),
		draft.Status().String(),
		date,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create invoice", err)
	}
	return id, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, draft invoice.Draft) (int64, error) {
	tag, err := dbtx.Exec(ctx, updateInvoiceSQL,
		draft.CustomerID(),
		draft.Amount().Cents(),
		draft.Status().String(),
		id,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update invoice", err)
	}
	return tag.RowsAffected(), nil
}

// Delete is idempotent: a missing row yields zero rows affected, not an error.
func (r *InvoiceRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (int64, error) {
	tag, err := dbtx.Exec(ctx, deleteInvoiceSQL, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete invoice", err)
	}
	return tag.RowsAffected(), nil
}
