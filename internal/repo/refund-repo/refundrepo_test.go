package refundrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
)

var refundCols = []string{"id", "auction_id", "user_id", "monto_solicitado", "tipo_reembolso", "estado", "monto_liberado", "voucher_ref", "requested_at", "resolved_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)
	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	rf := &domain.Refund{
		ID:              uuid.New(),
		AuctionID:       uuid.New(),
		UserID:          7,
		MontoSolicitado: decimal.RequireFromString("680"),
		TipoReembolso:   domain.RefundDevolverDinero,
		Estado:          domain.RefundSolicitado,
		RequestedAt:     time.Now(),
	}

	t.Run("refund saved", func(t *testing.T) {
		repo, mock := NewMock(t)

		rows := pgxmock.NewRows(refundCols).
			AddRow(rf.ID, rf.AuctionID, rf.UserID, rf.MontoSolicitado, rf.TipoReembolso, rf.Estado, decimal.Zero, "", rf.RequestedAt, (*time.Time)(nil))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO refunds`)).
			WithArgs(rf.ID, rf.AuctionID, rf.UserID, rf.MontoSolicitado, rf.TipoReembolso, rf.Estado, rf.RequestedAt).
			WillReturnRows(rows)

		saved, err := repo.Create(context.Background(), rf)
		assert.NoError(t, err)
		assert.Equal(t, rf.ID, saved.ID)
		assert.Equal(t, domain.RefundSolicitado, saved.Estado)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open refund already exists", func(t *testing.T) {
		repo, mock := NewMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO refunds`)).
			WithArgs(rf.ID, rf.AuctionID, rf.UserID, rf.MontoSolicitado, rf.TipoReembolso, rf.Estado, rf.RequestedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_refunds_one_open"})

		_, err := repo.Create(context.Background(), rf)
		assert.Equal(t, apperrors.CodeDuplicateRefundRequest, apperrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	rows := pgxmock.NewRows(refundCols).
		AddRow(uuid.New(), uuid.New(), 7, decimal.RequireFromString("680"), domain.RefundMantenerSaldo, domain.RefundProcesado, decimal.RequireFromString("680"), "TRX-001", now, &now).
		AddRow(uuid.New(), uuid.New(), 7, decimal.RequireFromString("840"), domain.RefundDevolverDinero, domain.RefundSolicitado, decimal.Zero, "", now.Add(-time.Hour), (*time.Time)(nil))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM refunds`)).
		WithArgs(7).
		WillReturnRows(rows)

	refunds, err := repo.FindByUserID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, refunds, 2)
	assert.Equal(t, domain.RefundProcesado, refunds[0].Estado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransitionEstado(t *testing.T) {
	t.Run("solicitado becomes confirmado", func(t *testing.T) {
		repo, mock := NewMock(t)

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE refunds`)).
			WithArgs(domain.RefundConfirmado, id, domain.RefundSolicitado).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.TransitionEstado(context.Background(), id, domain.RefundSolicitado, domain.RefundConfirmado))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refund already resolved", func(t *testing.T) {
		repo, mock := NewMock(t)

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE refunds`)).
			WithArgs(domain.RefundCancelado, id, domain.RefundSolicitado).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.TransitionEstado(context.Background(), id, domain.RefundSolicitado, domain.RefundCancelado)
		assert.Equal(t, apperrors.CodeInvalidStateTransition, apperrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SetVoucherRef(t *testing.T) {
	repo, mock := NewMock(t)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE refunds SET voucher_ref = $1 WHERE id = $2`)).
		WithArgs("TRX-2026-0042", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetVoucherRef(context.Background(), id, "TRX-2026-0042"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetMontoLiberado(t *testing.T) {
	repo, mock := NewMock(t)

	id := uuid.New()
	monto := decimal.RequireFromString("680")
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE refunds SET monto_liberado = $1 WHERE id = $2`)).
		WithArgs(monto, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetMontoLiberado(context.Background(), id, monto))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SumReleasedByAuction(t *testing.T) {
	t.Run("processed refunds summed", func(t *testing.T) {
		repo, mock := NewMock(t)

		auctionID := uuid.New()
		rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("680"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(monto_liberado), 0) FROM refunds WHERE auction_id = $1 AND estado = 'procesado'`)).
			WithArgs(auctionID).
			WillReturnRows(rows)

		sum, err := repo.SumReleasedByAuction(context.Background(), auctionID)
		assert.NoError(t, err)
		assert.True(t, sum.Equal(decimal.RequireFromString("680")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no processed refunds", func(t *testing.T) {
		repo, mock := NewMock(t)

		auctionID := uuid.New()
		rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.Zero)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(monto_liberado), 0) FROM refunds`)).
			WithArgs(auctionID).
			WillReturnRows(rows)

		sum, err := repo.SumReleasedByAuction(context.Background(), auctionID)
		assert.NoError(t, err)
		assert.True(t, sum.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
