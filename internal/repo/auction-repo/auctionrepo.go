package auctionrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

const auctionColumns = `id, estado, winner_id, monto_oferta, fecha_inicio, fecha_limite_pago, created_at, updated_at`

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the auction row for the span of the enclosing
// transaction, making the estado check atomic with the ledger adjustment.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// TransitionEstado is the compare-and-commit on the auction state. Zero rows
// means someone else transitioned the row first.
func (r *Repository) TransitionEstado(ctx context.Context, id uuid.UUID, from, to string) error {
	query := `
        UPDATE auctions
        SET estado = $1, updated_at = now()
        WHERE id = $2 AND estado = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("failed to transition auction", zap.String("auctionID", id.String()), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction is not in state "+from)
	}
	return nil
}

// FindExpirable returns pendiente_pago auctions whose payment deadline has
// passed, oldest first.
func (r *Repository) FindExpirable(ctx context.Context, now time.Time, limit uint32) ([]domain.Auction, error) {
	query := `
        SELECT ` + auctionColumns + `
        FROM auctions
        WHERE estado = 'pendiente_pago' AND fecha_limite_pago < $1
        ORDER BY fecha_limite_pago ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, now, int(limit))
	if err != nil {
		zap.L().Error("can't get expirable auctions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var auctions []domain.Auction
	for rows.Next() {
		var a domain.Auction
		err := rows.Scan(&a.ID, &a.Estado, &a.WinnerID, &a.MontoOferta, &a.FechaInicio, &a.FechaLimitePago, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan auction row", zap.Error(err))
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.Auction, error) {
	var a domain.Auction
	err := row.Scan(&a.ID, &a.Estado, &a.WinnerID, &a.MontoOferta, &a.FechaInicio, &a.FechaLimitePago, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find auction", zap.Error(err))
		return nil, err
	}
	return &a, nil
}
