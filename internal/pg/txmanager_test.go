package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/jpalomino/subastas/internal/apperrors"
)

func newManager(t *testing.T) (*Manager, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return NewTXManager(mockDB), mockDB
}

func TestManager_Begin(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		m, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var ran bool
		err := m.Begin(ctx, func(ctx context.Context) error {
			ran = true
			_, ok := txFromContext(ctx)
			assert.True(t, ok)
			return nil
		})

		assert.NoError(t, err)
		assert.True(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		m, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("boom")
		err := m.Begin(ctx, func(ctx context.Context) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("joins an enclosing transaction", func(t *testing.T) {
		m, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := m.Begin(ctx, func(outer context.Context) error {
			return m.Begin(outer, func(inner context.Context) error {
				_, ok := txFromContext(inner)
				assert.True(t, ok)
				return nil
			})
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries serialization failures and succeeds", func(t *testing.T) {
		m, mock := newManager(t)
		m.baseBackoff = time.Millisecond

		mock.ExpectBegin()
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectCommit()

		attempts := 0
		err := m.Begin(ctx, func(ctx context.Context) error {
			attempts++
			if attempts == 1 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exhausted retries surface as transient", func(t *testing.T) {
		m, mock := newManager(t)
		m.baseBackoff = time.Millisecond
		m = m.WithMaxRetries(1)

		mock.ExpectBegin()
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := m.Begin(ctx, func(ctx context.Context) error {
			return &pgconn.PgError{Code: "40P01"}
		})

		assert.Equal(t, apperrors.CodeTxConflict, apperrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
