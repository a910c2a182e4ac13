package commands

import (
	"context"
	"time"

	"invoice-dashboard/internal/domain/invoice"
	"invoice-dashboard/internal/infra/db"

	"github.com/google/uuid"
)

// InvoiceRepository issues the bind-parameterized write statements.
// Update and Delete report rows affected; zero is not an error.
type InvoiceRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, draft invoice.Draft, date time.Time) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, draft invoice.Draft) (int64, error)
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (int64, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}

// ListingInvalidator marks cached invoice listings stale after a mutation.
type ListingInvalidator interface {
	Invalidate(ctx context.Context) error
}
