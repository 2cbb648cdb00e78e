package refundrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const refundColumns = `id, auction_id, user_id, monto_solicitado, tipo_reembolso, estado, monto_liberado, voucher_ref, requested_at, resolved_at`

func (r *Repository) Create(ctx context.Context, rf *domain.Refund) (*domain.Refund, error) {
	query := `
        INSERT INTO refunds (id, auction_id, user_id, monto_solicitado, tipo_reembolso, estado, requested_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + refundColumns
	row := r.db.QueryRow(ctx, query, rf.ID, rf.AuctionID, rf.UserID, rf.MontoSolicitado, rf.TipoReembolso, rf.Estado, rf.RequestedAt)
	saved, err := r.scanOne(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(apperrors.CodeDuplicateRefundRequest, "an open refund already exists for this auction")
		}
		zap.L().Error("can't save refund", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1`
	refund, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return refund, nil
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1 FOR UPDATE`
	refund, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return refund, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Refund, error) {
	query := `
        SELECT ` + refundColumns + `
        FROM refunds
        WHERE user_id = $1
        ORDER BY requested_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch refunds", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		var rf domain.Refund
		err := rows.Scan(&rf.ID, &rf.AuctionID, &rf.UserID, &rf.MontoSolicitado, &rf.TipoReembolso, &rf.Estado, &rf.MontoLiberado, &rf.VoucherRef, &rf.RequestedAt, &rf.ResolvedAt)
		if err != nil {
			zap.L().Error("failed to scan refund row", zap.Error(err))
			return nil, err
		}
		refunds = append(refunds, rf)
	}
	return refunds, nil
}

// TransitionEstado is the compare-and-commit on the refund state machine.
// Terminal transitions stamp resolved_at.
func (r *Repository) TransitionEstado(ctx context.Context, id uuid.UUID, from, to string) error {
	query := `
        UPDATE refunds
        SET estado = $1,
            resolved_at = CASE WHEN $1 IN ('rechazado', 'procesado', 'cancelado') THEN now() ELSE resolved_at END
        WHERE id = $2 AND estado = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("failed to transition refund", zap.String("refundID", id.String()), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "refund is not in state "+from)
	}
	return nil
}

// SetVoucherRef records the settlement proof attached while processing.
func (r *Repository) SetVoucherRef(ctx context.Context, id uuid.UUID, voucherRef string) error {
	query := `UPDATE refunds SET voucher_ref = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, voucherRef, id); err != nil {
		zap.L().Error("failed to set refund voucher", zap.Error(err))
		return err
	}
	return nil
}

// SetMontoLiberado records how much of a processed refund settled out of the
// retained balance rather than out of disponible.
func (r *Repository) SetMontoLiberado(ctx context.Context, id uuid.UUID, monto decimal.Decimal) error {
	query := `UPDATE refunds SET monto_liberado = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, monto, id); err != nil {
		zap.L().Error("failed to set refund released amount", zap.Error(err))
		return err
	}
	return nil
}

// SumReleasedByAuction totals the hold amounts already released by processed
// refunds of the auction.
func (r *Repository) SumReleasedByAuction(ctx context.Context, auctionID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(monto_liberado), 0) FROM refunds WHERE auction_id = $1 AND estado = 'procesado'`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, auctionID).Scan(&sum); err != nil {
		zap.L().Error("failed to sum released refunds", zap.Error(err))
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.Refund, error) {
	var rf domain.Refund
	err := row.Scan(&rf.ID, &rf.AuctionID, &rf.UserID, &rf.MontoSolicitado, &rf.TipoReembolso, &rf.Estado, &rf.MontoLiberado, &rf.VoucherRef, &rf.RequestedAt, &rf.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &rf, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
