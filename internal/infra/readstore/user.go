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

const (
	findUserByIDSQL = `
		SELECT id, name, email, role, is_active
		FROM users
		WHERE id = $1`

	findUserByEmailSQL = `
		SELECT id, name, email, role, is_active, password_hash
		FROM users
		WHERE email = $1`
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).
		Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v            queries.AuthorizedUserView
		passwordHash string
	)
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).
		Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, passwordHash, nil
}
