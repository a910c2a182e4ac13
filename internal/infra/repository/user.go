package repository

import (
	"context"

	"invoice-dashboard/internal/infra"
	"invoice-dashboard/internal/infra/db"

	"github.com/google/uuid"
)

const updateLastLoginSQL = `UPDATE users SET last_login = now() WHERE id = $1`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
