package queries

import (
	"context"
	"fmt"
	"time"

	"invoice-dashboard/internal/infra"
	"invoice-dashboard/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvoiceNotFound = errs.New("invoice not found")

// ListingRoute is the canonical invoice listing path. Mutations redirect
// here and cache entries are keyed under it.
const ListingRoute = "/dashboard/invoices"

const itemsPerPage = 6

type InvoiceView struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

type ListFilter struct {
	Query string
	Page  int
}

type InvoiceQueries interface {
	List(ctx context.Context, filter ListFilter) ([]InvoiceView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
}

type InvoiceReadStore interface {
	Search(ctx context.Context, query string, limit, offset int) ([]InvoiceView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
}

// ListingCache is a best-effort read-through cache for listing pages.
// A miss (or an unreachable cache) falls back to the read store.
type ListingCache interface {
	GetList(ctx context.Context, key string) ([]InvoiceView, bool)
	SetList(ctx context.Context, key string, views []InvoiceView)
}

type invoiceQueriesImpl struct {
	readStore InvoiceReadStore
	cache     ListingCache
}

func NewInvoiceQueries(readStore InvoiceReadStore, cache ListingCache) InvoiceQueries {
	return &invoiceQueriesImpl{
		readStore: readStore,
		cache:     cache,
	}
}

func (q *invoiceQueriesImpl) List(ctx context.Context, filter ListFilter) ([]InvoiceView, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	key := listingCacheKey(filter)

	if views, ok := q.cache.GetList(ctx, key); ok {
		return views, nil
	}

	offset := (filter.Page - 1) * itemsPerPage
	views, err := q.readStore.Search(ctx, filter.Query, itemsPerPage, offset)
	if err != nil {
		return nil, err
	}

	q.cache.SetList(ctx, key, views)
	return views, nil
}

func (q *invoiceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return view, nil
}

func listingCacheKey(filter ListFilter) string {
	return fmt.Sprintf("%s?query=%s&page=%d", ListingRoute, filter.Query, filter.Page)
}
