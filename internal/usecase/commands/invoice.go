package commands

import (
	"context"
	"log/slog"

	"invoice-dashboard/internal/domain/invoice"
	"invoice-dashboard/internal/infra/db"
	"invoice-dashboard/internal/pkg/clock"
	"invoice-dashboard/internal/pkg/errs"
	"invoice-dashboard/internal/usecase/queries"
	"invoice-dashboard/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvoicePersist = errs.New("invoice persistence failed")

// Outcome is the success variant of a mutation: callers must transfer
// control to RedirectTo and not run any further statements.
type Outcome struct {
	InvoiceID  uuid.UUID
	RedirectTo string
}

type InvoiceCommands interface {
	Create(ctx context.Context, draft invoice.Draft) (*Outcome, error)
	Update(ctx context.Context, id uuid.UUID, draft invoice.Draft) (*Outcome, error)
	// Delete does not navigate; it is invoked in place from the listing.
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceCommandsImpl struct {
	tx       shared.TxRunner
	invoices InvoiceRepository
	listing  ListingInvalidator
	clock    clock.Clock
}

func NewInvoiceCommands(tx shared.TxRunner, invoices InvoiceRepository, listing ListingInvalidator, clk clock.Clock) InvoiceCommands {
	return &invoiceCommandsImpl{
		tx:       tx,
		invoices: invoices,
		listing:  listing,
		clock:    clk,
	}
}

func (c *invoiceCommandsImpl) Create(ctx context.Context, draft invoice.Draft) (*Outcome, error) {
	var id uuid.UUID
	err := c.tx.Within(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		created, err := c.invoices.Create(ctx, dbtx, draft, c.clock.Now())
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInvoicePersist)
	}

	c.invalidateListing(ctx)
	return &Outcome{InvoiceID: id, RedirectTo: queries.ListingRoute}, nil
}

func (c *invoiceCommandsImpl) Update(ctx context.Context, id uuid.UUID, draft invoice.Draft) (*Outcome, error) {
	err := c.tx.Within(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		affected, err := c.invoices.Update(ctx, dbtx, id, draft)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Row vanished between form load and submit. Not an error;
			// the redirect lands on a listing that reflects reality.
			slog.Warn("invoice update affected no rows", "invoice_id", id)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInvoicePersist)
	}

	c.invalidateListing(ctx)
	return &Outcome{InvoiceID: id, RedirectTo: queries.ListingRoute}, nil
}

func (c *invoiceCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.tx.Within(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		affected, err := c.invoices.Delete(ctx, dbtx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			slog.Warn("invoice delete affected no rows", "invoice_id", id)
		}
		return nil
	})
	if err != nil {
		return errs.Mark(err, ErrInvoicePersist)
	}

	c.invalidateListing(ctx)
	return nil
}

// Invalidation failure is not a mutation failure: the listing cache
// expires on its own TTL.
func (c *invoiceCommandsImpl) invalidateListing(ctx context.Context) {
	if err := c.listing.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate invoice listing cache", "error", err.Error())
	}
}
