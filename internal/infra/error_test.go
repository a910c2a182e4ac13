//go:build unit

package infra

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRepoErr(t *testing.T) {
	t.Run("explicit kind wins", func(t *testing.T) {
		err := WrapRepoErr("lookup failed", pgx.ErrNoRows, KindDBFailure)
		assert.True(t, IsKind(err, KindDBFailure))
		assert.False(t, IsKind(err, KindNotFound))
	})

	t.Run("derives the kind from the cause", func(t *testing.T) {
		cases := []struct {
			name  string
			cause error
			kind  RepositoryErrorKind
		}{
			{name: "no rows", cause: pgx.ErrNoRows, kind: KindNotFound},
			{name: "unique violation", cause: &pgconn.PgError{Code: "23505"}, kind: KindDuplicateKey},
			{name: "foreign key violation", cause: &pgconn.PgError{Code: "23503"}, kind: KindForeignKeyViolated},
			{name: "anything else", cause: errors.New("connection reset"), kind: KindDBFailure},
			{name: "unrelated pg error", cause: &pgconn.PgError{Code: "57014"}, kind: KindDBFailure},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := WrapRepoErr("op failed", tc.cause)
				assert.True(t, IsKind(err, tc.kind), "expected kind %s, got %v", tc.kind, err)
			})
		}
	})

	t.Run("keeps the cause in the chain", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "23503", ConstraintName: "invoices_customer_id_fkey"}
		err := WrapRepoErr("insert failed", cause)

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "invoices_customer_id_fkey", pgErr.ConstraintName)
	})

	t.Run("nil cause still carries the kind", func(t *testing.T) {
		err := WrapRepoErr("row missing", nil, KindNotFound)
		assert.True(t, IsKind(err, KindNotFound))
		assert.Equal(t, "NOT_FOUND: row missing", err.Error())
	})
}

func TestIsKind(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), KindDBFailure))
	assert.False(t, IsKind(nil, KindDBFailure))
}
