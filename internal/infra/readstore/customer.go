package readstore

import (
	"context"

	"invoice-dashboard/internal/infra"
	"invoice-dashboard/internal/infra/db"
	"invoice-dashboard/internal/usecase/queries"
)

const listCustomersSQL = `
	SELECT id, name, email
	FROM customers
	ORDER BY name ASC`

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(dbtx db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: dbtx}
}

func (r *CustomerReadStore) ListAll(ctx context.Context) ([]queries.CustomerView, error) {
	rows, err := r.db.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	defer rows.Close()

	views := make([]queries.CustomerView, 0)
	for rows.Next() {
		var v queries.CustomerView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read customer rows", err)
	}

	return views, nil
}
