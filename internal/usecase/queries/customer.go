package queries

import (
	"context"

	"github.com/google/uuid"
)

type CustomerView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type CustomerQueries interface {
	// List returns all customers ordered by name, for the invoice form's
	// customer select.
	List(ctx context.Context) ([]CustomerView, error)
}

type CustomerReadStore interface {
	ListAll(ctx context.Context) ([]CustomerView, error)
}

type customerQueriesImpl struct {
	readStore CustomerReadStore
}

func NewCustomerQueries(readStore CustomerReadStore) CustomerQueries {
	return &customerQueriesImpl{readStore: readStore}
}

func (q *customerQueriesImpl) List(ctx context.Context) ([]CustomerView, error) {
	return q.readStore.ListAll(ctx)
}
