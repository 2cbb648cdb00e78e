package billingrepo

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

const billingColumns = `id, auction_id, user_id, document_type, document_number, document_name, completed, completed_at`

func (r *Repository) Create(ctx context.Context, b *domain.Billing) (*domain.Billing, error) {
	query := `
        INSERT INTO billings (id, auction_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING ` + billingColumns
	saved, err := r.scanOne(r.db.QueryRow(ctx, query, b.ID, b.AuctionID, b.UserID))
	if err != nil {
		zap.L().Error("can't save billing", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) GetByAuctionID(ctx context.Context, auctionID uuid.UUID) (*domain.Billing, error) {
	query := `SELECT ` + billingColumns + ` FROM billings WHERE auction_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, auctionID))
}

func (r *Repository) GetByAuctionIDForUpdate(ctx context.Context, auctionID uuid.UUID) (*domain.Billing, error) {
	query := `SELECT ` + billingColumns + ` FROM billings WHERE auction_id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, auctionID))
}

// Complete fills the document fields and flips completed exactly once. The
// WHERE completed = FALSE guard makes the second attempt match zero rows; the
// partial unique document index rejects a reused (user, document) pair.
func (r *Repository) Complete(ctx context.Context, id uuid.UUID, docType, docNumber, docName string) error {
	query := `
        UPDATE billings
        SET document_type = $1, document_number = $2, document_name = $3,
            completed = TRUE, completed_at = now()
        WHERE id = $4 AND completed = FALSE
    `
	tag, err := r.db.Exec(ctx, query, docType, docNumber, docName, id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(apperrors.CodeDuplicateBillingDoc, "document already used by this user")
		}
		zap.L().Error("failed to complete billing", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict(apperrors.CodeBillingCompleted, "billing already completed")
	}
	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.Billing, error) {
	var b domain.Billing
	err := row.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.DocumentType, &b.DocumentNumber, &b.DocumentName, &b.Completed, &b.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't scan billing", zap.Error(err))
		return nil, err
	}
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
