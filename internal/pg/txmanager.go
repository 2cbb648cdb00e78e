package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
)

//go:generate mockgen -source=txmanager.go -destination=txmanager_mock.go -package=pg

// TXManager runs a function inside a database transaction. The transaction is
// carried in the context, so every Database call made by fn lands on it.
type TXManager interface {
	Begin(ctx context.Context, fn func(ctx context.Context) error) error
}

type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Manager struct {
	pool        TxBeginner
	maxRetries  uint64
	baseBackoff time.Duration
}

func NewTXManager(pool TxBeginner) *Manager {
	return &Manager{
		pool:        pool,
		maxRetries:  3,
		baseBackoff: 50 * time.Millisecond,
	}
}

// WithMaxRetries overrides the conflict retry budget from configuration.
func (m *Manager) WithMaxRetries(n uint64) *Manager {
	if n > 0 {
		m.maxRetries = n
	}
	return m
}

// Begin is reentrant: when the context already carries a transaction the
// function joins it instead of opening a nested one. Serialization and
// deadlock failures are retried with exponential backoff; exhaustion surfaces
// as a Transient error, safe for the caller to retry.
func (m *Manager) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewExponential(m.baseBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := m.runTx(ctx, fn)
		if err != nil && isSerializationFailure(err) {
			zap.L().Warn("tx conflict, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && isSerializationFailure(err) {
		return apperrors.Transient("transaction conflict", err)
	}
	return err
}

func (m *Manager) runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("can't begin tx: %w", err)
	}

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			zap.L().Error("tx rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("can't commit tx: %w", err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 40001 serialization_failure, 40P01 deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
