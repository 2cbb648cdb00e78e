package movementrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const movementColumns = `id, auction_id, user_id, monto, estado, voucher_ref, reject_reasons, submitted_at, resolved_at`

func (r *Repository) Create(ctx context.Context, m *domain.Movement) (*domain.Movement, error) {
	query := `
        INSERT INTO movements (id, auction_id, user_id, monto, estado, voucher_ref, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + movementColumns
	row := r.db.QueryRow(ctx, query, m.ID, m.AuctionID, m.UserID, m.Monto, m.Estado, m.VoucherRef, m.SubmittedAt)
	saved, err := r.scanOne(row)
	if err != nil {
		zap.L().Error("can't save movement", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) FindByAuctionID(ctx context.Context, auctionID uuid.UUID) ([]domain.Movement, error) {
	query := `
        SELECT ` + movementColumns + `
        FROM movements
        WHERE auction_id = $1
        ORDER BY submitted_at DESC
    `
	rows, err := r.db.Query(ctx, query, auctionID)
	if err != nil {
		zap.L().Error("can't get movements", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		var m domain.Movement
		err := rows.Scan(&m.ID, &m.AuctionID, &m.UserID, &m.Monto, &m.Estado, &m.VoucherRef, &m.RejectReasons, &m.SubmittedAt, &m.ResolvedAt)
		if err != nil {
			zap.L().Error("can't scan movement row", zap.Error(err))
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

// HasApproved reports whether the auction already holds its single approved
// payment.
func (r *Repository) HasApproved(ctx context.Context, auctionID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movements WHERE auction_id = $1 AND estado = 'aprobado')`
	var exists bool
	if err := r.db.QueryRow(ctx, query, auctionID).Scan(&exists); err != nil {
		zap.L().Error("can't check approved movement", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// Approve is the pendiente -> aprobado compare-and-commit. The partial unique
// index on (auction_id) WHERE estado='aprobado' backs it up against a second
// approval racing in through another movement of the same auction.
func (r *Repository) Approve(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE movements
        SET estado = 'aprobado', resolved_at = now()
        WHERE id = $1 AND estado = 'pendiente'
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(apperrors.CodeDuplicateApproved, "auction already has an approved payment")
		}
		zap.L().Error("failed to approve movement", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "movement is not pendiente")
	}
	return nil
}

// Reject is the pendiente -> rechazado compare-and-commit.
func (r *Repository) Reject(ctx context.Context, id uuid.UUID, reasons []string) error {
	query := `
        UPDATE movements
        SET estado = 'rechazado', reject_reasons = $1, resolved_at = now()
        WHERE id = $2 AND estado = 'pendiente'
    `
	tag, err := r.db.Exec(ctx, query, reasons, id)
	if err != nil {
		zap.L().Error("failed to reject movement", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "movement is not pendiente")
	}
	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.Movement, error) {
	var m domain.Movement
	err := row.Scan(&m.ID, &m.AuctionID, &m.UserID, &m.Monto, &m.Estado, &m.VoucherRef, &m.RejectReasons, &m.SubmittedAt, &m.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't scan movement", zap.Error(err))
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
