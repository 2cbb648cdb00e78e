package balancerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error) {
	query := `
        SELECT id, user_id, saldo_total, saldo_retenido, saldo_aplicado, version
        FROM balance_accounts
        WHERE user_id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// GetUserBalanceForUpdate takes the row lock that serializes all ledger
// operations for one user. Only meaningful inside a transaction.
func (r *Repository) GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.BalanceAccount, error) {
	query := `
        SELECT id, user_id, saldo_total, saldo_retenido, saldo_aplicado, version
        FROM balance_accounts
        WHERE user_id = $1
        FOR UPDATE
    `
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *Repository) CreateUserBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error) {
	query := `
        INSERT INTO balance_accounts (user_id, saldo_total, saldo_retenido, saldo_aplicado)
        VALUES ($1, 0, 0, 0)
        RETURNING id, user_id, saldo_total, saldo_retenido, saldo_aplicado, version
    `
	balance, err := r.scanOne(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("failed to create user balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return nil, errors.New("insert returned no row")
	}
	return balance, nil
}

// Adjust applies the delta triple as one guarded read-modify-write. The WHERE
// clause re-checks non-negativity and retenido + aplicado <= total within
// tolerance, so a violating adjustment matches zero rows and commits nothing.
func (r *Repository) Adjust(ctx context.Context, userID int, dTotal, dRetenido, dAplicado decimal.Decimal) (*domain.BalanceAccount, error) {
	query := `
        UPDATE balance_accounts
        SET saldo_total    = saldo_total + $1,
            saldo_retenido = saldo_retenido + $2,
            saldo_aplicado = saldo_aplicado + $3,
            version        = version + 1
        WHERE user_id = $4
          AND saldo_total + $1 >= 0
          AND saldo_retenido + $2 >= 0
          AND saldo_aplicado + $3 >= 0
          AND (saldo_retenido + $2) + (saldo_aplicado + $3) <= (saldo_total + $1) + 0.01
        RETURNING id, user_id, saldo_total, saldo_retenido, saldo_aplicado, version
    `
	balance, err := r.scanOne(r.db.QueryRow(ctx, query, dTotal, dRetenido, dAplicado, userID))
	if err != nil {
		zap.L().Error("failed to adjust balance", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	if balance == nil {
		existing, err := r.GetUserBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperrors.NotFound("balance account not found")
		}
		zap.L().Warn("adjustment rejected by balance guard",
			zap.Int("userID", userID),
			zap.String("dTotal", dTotal.String()),
			zap.String("dRetenido", dRetenido.String()),
			zap.String("dAplicado", dAplicado.String()),
		)
		return nil, apperrors.Conflict(apperrors.CodeNegativeBalance, "adjustment would break balance invariants")
	}
	return balance, nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.BalanceAccount, error) {
	var balance domain.BalanceAccount
	err := row.Scan(&balance.ID, &balance.UserID, &balance.SaldoTotal, &balance.SaldoRetenido, &balance.SaldoAplicado, &balance.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to scan balance row", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}
