package refundservice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockRefundRepo, *MockAuctionRepo, *MockMovementRepo, *MockBalanceRepo, *pg.MockTXManager, *MockNotifier) {
	ctrl := gomock.NewController(t)
	refundRepo := NewMockRefundRepo(ctrl)
	auctionRepo := NewMockAuctionRepo(ctrl)
	movementRepo := NewMockMovementRepo(ctrl)
	balanceRepo := NewMockBalanceRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	notifier := NewMockNotifier(ctrl)
	service := New(refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, notifier)
	return service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, notifier
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func lostAuction(winnerID int, oferta string) *domain.Auction {
	return &domain.Auction{
		ID:          uuid.New(),
		Estado:      domain.AuctionPerdida,
		WinnerID:    &winnerID,
		MontoOferta: decimal.RequireFromString(oferta),
	}
}

func confirmedRefund(auctionID uuid.UUID, userID int, monto, tipo string) *domain.Refund {
	return &domain.Refund{
		ID:              uuid.New(),
		AuctionID:       auctionID,
		UserID:          userID,
		MontoSolicitado: decimal.RequireFromString(monto),
		TipoReembolso:   tipo,
		Estado:          domain.RefundConfirmado,
		RequestedAt:     time.Now(),
	}
}

func TestRequest(t *testing.T) {
	userID := 7

	t.Run("held guarantee of a lost auction is requestable", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, notifier := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalance(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    decimal.RequireFromString("680"),
			SaldoRetenido: decimal.RequireFromString("680"),
		}, nil)
		movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
		refundRepo.EXPECT().SumReleasedByAuction(gomock.Any(), auction.ID).Return(decimal.Zero, nil)
		refundRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rf *domain.Refund) (*domain.Refund, error) {
				assert.Equal(t, domain.RefundSolicitado, rf.Estado)
				assert.Equal(t, domain.RefundDevolverDinero, rf.TipoReembolso)
				return rf, nil
			},
		)
		notifier.EXPECT().Emit(gomock.Any())

		refund, err := service.Request(context.Background(), userID, auction.ID, decimal.RequireFromString("680"), domain.RefundDevolverDinero)
		assert.NoError(t, err)
		assert.Equal(t, auction.ID, refund.AuctionID)
	})

	t.Run("amount above the refundable ceiling", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalance(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    decimal.RequireFromString("680"),
			SaldoRetenido: decimal.RequireFromString("680"),
		}, nil)
		movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
		refundRepo.EXPECT().SumReleasedByAuction(gomock.Any(), auction.ID).Return(decimal.Zero, nil)

		_, err := service.Request(context.Background(), userID, auction.ID, decimal.RequireFromString("700"), domain.RefundDevolverDinero)
		assert.Equal(t, apperrors.CodeInsufficientAvailable, apperrors.CodeOf(err))
	})

	t.Run("already refunded guarantee is no longer requestable", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalance(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    decimal.RequireFromString("680"),
			SaldoRetenido: decimal.RequireFromString("680"),
		}, nil)
		movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
		refundRepo.EXPECT().SumReleasedByAuction(gomock.Any(), auction.ID).Return(decimal.RequireFromString("680"), nil)

		_, err := service.Request(context.Background(), userID, auction.ID, decimal.RequireFromString("680"), domain.RefundDevolverDinero)
		assert.Equal(t, apperrors.CodeInsufficientAvailable, apperrors.CodeOf(err))
	})

	t.Run("unknown refund type", func(t *testing.T) {
		service, _, _, _, _, _, _ := NewMock(t)

		_, err := service.Request(context.Background(), userID, uuid.New(), decimal.RequireFromString("100"), "efectivo")
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})

	t.Run("only the winner can request", func(t *testing.T) {
		service, _, auctionRepo, _, _, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)

		_, err := service.Request(context.Background(), userID+1, auction.ID, decimal.RequireFromString("100"), domain.RefundMantenerSaldo)
		assert.Equal(t, apperrors.CodeNotCurrentWinner, apperrors.CodeOf(err))
	})
}

func TestManage(t *testing.T) {
	userID := 7

	tests := []struct {
		name         string
		decision     string
		estado       string
		expectedTo   string
		expectedCode string
	}{
		{name: "confirm", decision: DecisionConfirm, estado: domain.RefundSolicitado, expectedTo: domain.RefundConfirmado},
		{name: "reject", decision: DecisionReject, estado: domain.RefundSolicitado, expectedTo: domain.RefundRechazado},
		{name: "already decided", decision: DecisionConfirm, estado: domain.RefundConfirmado, expectedCode: apperrors.CodeInvalidStateTransition},
		{name: "unknown decision", decision: "maybe", expectedCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, refundRepo, _, _, _, txManager, notifier := NewMock(t)
			passthroughTx(txManager)

			refund := confirmedRefund(uuid.New(), userID, "680", domain.RefundDevolverDinero)
			refund.Estado = tt.estado

			if tt.decision == DecisionConfirm || tt.decision == DecisionReject {
				refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
			}
			if tt.expectedCode == "" {
				refundRepo.EXPECT().TransitionEstado(gomock.Any(), refund.ID, domain.RefundSolicitado, tt.expectedTo).Return(nil)
				notifier.EXPECT().Emit(gomock.Any())
			}

			got, err := service.Manage(context.Background(), refund.ID, tt.decision)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, apperrors.CodeOf(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTo, got.Estado)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	userID := 7

	t.Run("owner cancels a confirmed refund", func(t *testing.T) {
		service, refundRepo, _, _, _, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		refund := confirmedRefund(uuid.New(), userID, "680", domain.RefundMantenerSaldo)
		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
		refundRepo.EXPECT().TransitionEstado(gomock.Any(), refund.ID, domain.RefundConfirmado, domain.RefundCancelado).Return(nil)

		err := service.Cancel(context.Background(), userID, refund.ID)
		assert.NoError(t, err)
	})

	t.Run("someone else's refund", func(t *testing.T) {
		service, refundRepo, _, _, _, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		refund := confirmedRefund(uuid.New(), userID, "680", domain.RefundMantenerSaldo)
		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)

		err := service.Cancel(context.Background(), userID+1, refund.ID)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
	})
}

func TestProcess(t *testing.T) {
	userID := 7

	t.Run("devolver_dinero out of the hold empties the account", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, notifier := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		refund := confirmedRefund(auction.ID, userID, "680", domain.RefundDevolverDinero)
		monto := decimal.RequireFromString("680")

		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalanceForUpdate(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    monto,
			SaldoRetenido: monto,
		}, nil)
		movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
		refundRepo.EXPECT().SumReleasedByAuction(gomock.Any(), auction.ID).Return(decimal.Zero, nil)
		refundRepo.EXPECT().TransitionEstado(gomock.Any(), refund.ID, domain.RefundConfirmado, domain.RefundProcesado).Return(nil)
		refundRepo.EXPECT().SetMontoLiberado(gomock.Any(), refund.ID, monto).Return(nil)
		refundRepo.EXPECT().SetVoucherRef(gomock.Any(), refund.ID, "tr-0042").Return(nil)
		balanceRepo.EXPECT().Adjust(gomock.Any(), userID, gomock.Any(), gomock.Any(), decimal.Zero).DoAndReturn(
			func(_ context.Context, _ int, dTotal, dRetenido, _ decimal.Decimal) (*domain.BalanceAccount, error) {
				assert.True(t, dTotal.Equal(monto.Neg()))
				assert.True(t, dRetenido.Equal(monto.Neg()))
				return &domain.BalanceAccount{UserID: userID}, nil
			},
		)
		notifier.EXPECT().Emit(gomock.Any())

		snapshot, err := service.Process(context.Background(), refund.ID, "tr-0042")
		assert.NoError(t, err)
		assert.True(t, snapshot.SaldoTotal.IsZero())
		assert.True(t, snapshot.SaldoRetenido.IsZero())
	})

	t.Run("mantener_saldo releases the hold into disponible", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, notifier := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		refund := confirmedRefund(auction.ID, userID, "680", domain.RefundMantenerSaldo)
		monto := decimal.RequireFromString("680")

		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalanceForUpdate(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    monto,
			SaldoRetenido: monto,
		}, nil)
		movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
		refundRepo.EXPECT().SumReleasedByAuction(gomock.Any(), auction.ID).Return(decimal.Zero, nil)
		refundRepo.EXPECT().TransitionEstado(gomock.Any(), refund.ID, domain.RefundConfirmado, domain.RefundProcesado).Return(nil)
		refundRepo.EXPECT().SetMontoLiberado(gomock.Any(), refund.ID, monto).Return(nil)
		balanceRepo.EXPECT().Adjust(gomock.Any(), userID, decimal.Zero, gomock.Any(), decimal.Zero).DoAndReturn(
			func(_ context.Context, _ int, _, dRetenido, _ decimal.Decimal) (*domain.BalanceAccount, error) {
				assert.True(t, dRetenido.Equal(monto.Neg()))
				return &domain.BalanceAccount{UserID: userID, SaldoTotal: monto}, nil
			},
		)
		notifier.EXPECT().Emit(gomock.Any())

		snapshot, err := service.Process(context.Background(), refund.ID, "")
		assert.NoError(t, err)
		assert.True(t, snapshot.SaldoTotal.Equal(monto))
		assert.True(t, snapshot.SaldoDisponible.Equal(monto))
	})

	t.Run("mantener_saldo on already available money is a consent record", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, notifier := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		auction.Estado = domain.AuctionPenalizada
		refund := confirmedRefund(auction.ID, userID, "840", domain.RefundMantenerSaldo)

		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalanceForUpdate(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:     userID,
			SaldoTotal: decimal.RequireFromString("840"),
		}, nil)
		refundRepo.EXPECT().TransitionEstado(gomock.Any(), refund.ID, domain.RefundConfirmado, domain.RefundProcesado).Return(nil)
		notifier.EXPECT().Emit(gomock.Any())
		_ = movementRepo

		snapshot, err := service.Process(context.Background(), refund.ID, "")
		assert.NoError(t, err)
		assert.True(t, snapshot.SaldoTotal.Equal(decimal.RequireFromString("840")))
		assert.True(t, snapshot.SaldoDisponible.Equal(decimal.RequireFromString("840")))
	})

	t.Run("devolver_dinero beyond disponible is rejected", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		auction := lostAuction(userID, "8500")
		auction.Estado = domain.AuctionPenalizada
		refund := confirmedRefund(auction.ID, userID, "900", domain.RefundDevolverDinero)

		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalanceForUpdate(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:     userID,
			SaldoTotal: decimal.RequireFromString("840"),
		}, nil)
		_ = movementRepo

		_, err := service.Process(context.Background(), refund.ID, "")
		assert.Equal(t, apperrors.CodeInsufficientAvailable, apperrors.CodeOf(err))
	})

	t.Run("hold already released by an earlier refund cannot settle again", func(t *testing.T) {
		service, refundRepo, auctionRepo, movementRepo, balanceRepo, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		// the remaining retenido belongs to another auction's hold
		auction := lostAuction(userID, "8500")
		refund := confirmedRefund(auction.ID, userID, "680", domain.RefundDevolverDinero)

		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		balanceRepo.EXPECT().GetUserBalanceForUpdate(gomock.Any(), userID).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    decimal.RequireFromString("680"),
			SaldoRetenido: decimal.RequireFromString("680"),
		}, nil)
		movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
		refundRepo.EXPECT().SumReleasedByAuction(gomock.Any(), auction.ID).Return(decimal.RequireFromString("680"), nil)

		_, err := service.Process(context.Background(), refund.ID, "")
		assert.Equal(t, apperrors.CodeInsufficientAvailable, apperrors.CodeOf(err))
	})

	t.Run("refund not confirmado", func(t *testing.T) {
		service, refundRepo, _, _, _, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		refund := confirmedRefund(uuid.New(), userID, "680", domain.RefundDevolverDinero)
		refund.Estado = domain.RefundProcesado
		refundRepo.EXPECT().GetByIDForUpdate(gomock.Any(), refund.ID).Return(refund, nil)

		_, err := service.Process(context.Background(), refund.ID, "")
		assert.Equal(t, apperrors.CodeInvalidStateTransition, apperrors.CodeOf(err))
	})
}

func TestGetRefunds(t *testing.T) {
	service, refundRepo, _, _, _, _, _ := NewMock(t)

	userID := 7
	refundRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return([]domain.Refund{
		{ID: uuid.New(), UserID: userID, Estado: domain.RefundProcesado},
	}, nil)

	refunds, err := service.GetRefunds(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, refunds, 1)
}
