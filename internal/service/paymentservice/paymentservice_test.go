package paymentservice

import (
	"context"
	"errors"
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

func NewMock(t *testing.T) (*Service, *MockMovementRepo, *MockAuctionRepo, *MockBalanceRepo, *pg.MockTXManager, *MockNotifier) {
	ctrl := gomock.NewController(t)
	movementRepo := NewMockMovementRepo(ctrl)
	auctionRepo := NewMockAuctionRepo(ctrl)
	balanceRepo := NewMockBalanceRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	notifier := NewMockNotifier(ctrl)
	service := New(movementRepo, auctionRepo, balanceRepo, txManager, notifier)
	return service, movementRepo, auctionRepo, balanceRepo, txManager, notifier
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func payableAuction(winnerID int, oferta string) *domain.Auction {
	return &domain.Auction{
		ID:              uuid.New(),
		Estado:          domain.AuctionPendientePago,
		WinnerID:        &winnerID,
		MontoOferta:     decimal.RequireFromString(oferta),
		FechaInicio:     time.Now().Add(-48 * time.Hour),
		FechaLimitePago: time.Now().Add(48 * time.Hour),
	}
}

func TestSubmit(t *testing.T) {
	userID := 7
	otherID := 8

	tests := []struct {
		name         string
		userID       int
		monto        decimal.Decimal
		prepareMock  func(auction *domain.Auction, movementRepo *MockMovementRepo, auctionRepo *MockAuctionRepo)
		expectedCode string
	}{
		{
			name:   "Submit guarantee for a 1250 offer",
			userID: userID,
			monto:  decimal.RequireFromString("100.00"),
			prepareMock: func(auction *domain.Auction, movementRepo *MockMovementRepo, auctionRepo *MockAuctionRepo) {
				auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
				movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(false, nil)
				movementRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, m *domain.Movement) (*domain.Movement, error) {
						assert.Equal(t, domain.MovementPendiente, m.Estado)
						assert.True(t, m.Monto.Equal(decimal.RequireFromString("100")))
						return m, nil
					},
				)
			},
		},
		{
			name:   "Amount different from the guarantee is rejected",
			userID: userID,
			monto:  decimal.RequireFromString("99.99"),
			prepareMock: func(auction *domain.Auction, movementRepo *MockMovementRepo, auctionRepo *MockAuctionRepo) {
				auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
			},
			expectedCode: apperrors.CodeInvalidAmount,
		},
		{
			name:   "Only the registered winner can pay",
			userID: otherID,
			monto:  decimal.RequireFromString("100.00"),
			prepareMock: func(auction *domain.Auction, movementRepo *MockMovementRepo, auctionRepo *MockAuctionRepo) {
				auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
			},
			expectedCode: apperrors.CodeNotCurrentWinner,
		},
		{
			name:   "Second approval attempt is blocked",
			userID: userID,
			monto:  decimal.RequireFromString("100.00"),
			prepareMock: func(auction *domain.Auction, movementRepo *MockMovementRepo, auctionRepo *MockAuctionRepo) {
				auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
				movementRepo.EXPECT().HasApproved(gomock.Any(), auction.ID).Return(true, nil)
			},
			expectedCode: apperrors.CodeDuplicateApproved,
		},
		{
			name:   "Payment before the auction window",
			userID: userID,
			monto:  decimal.RequireFromString("100.00"),
			prepareMock: func(auction *domain.Auction, movementRepo *MockMovementRepo, auctionRepo *MockAuctionRepo) {
				auction.FechaInicio = time.Now().Add(24 * time.Hour)
				auctionRepo.EXPECT().GetByID(gomock.Any(), auction.ID).Return(auction, nil)
			},
			expectedCode: apperrors.CodeInvalidPaymentDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, movementRepo, auctionRepo, _, _, _ := NewMock(t)
			auction := payableAuction(userID, "1250")
			tt.prepareMock(auction, movementRepo, auctionRepo)

			movement, err := service.Submit(context.Background(), tt.userID, auction.ID, tt.monto, "op-001")
			if tt.expectedCode != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedCode, apperrors.CodeOf(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, auction.ID, movement.AuctionID)
			}
		})
	}
}

func TestApprove(t *testing.T) {
	userID := 7
	garantia := decimal.RequireFromString("1200")

	t.Run("Approval retains the guarantee", func(t *testing.T) {
		service, movementRepo, auctionRepo, balanceRepo, txManager, notifier := NewMock(t)
		passthroughTx(txManager)

		auction := payableAuction(userID, "15000")
		movement := &domain.Movement{
			ID:        uuid.New(),
			AuctionID: auction.ID,
			UserID:    userID,
			Monto:     garantia,
			Estado:    domain.MovementPendiente,
		}

		movementRepo.EXPECT().GetByID(gomock.Any(), movement.ID).Return(movement, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		movementRepo.EXPECT().GetByIDForUpdate(gomock.Any(), movement.ID).Return(movement, nil)
		balanceRepo.EXPECT().GetUserBalanceForUpdate(gomock.Any(), userID).Return(&domain.BalanceAccount{UserID: userID}, nil)
		movementRepo.EXPECT().Approve(gomock.Any(), movement.ID).Return(nil)
		auctionRepo.EXPECT().TransitionEstado(gomock.Any(), auction.ID, domain.AuctionPendientePago, domain.AuctionPagada).Return(nil)
		balanceRepo.EXPECT().Adjust(gomock.Any(), userID, garantia, garantia, decimal.Zero).Return(&domain.BalanceAccount{
			UserID:        userID,
			SaldoTotal:    garantia,
			SaldoRetenido: garantia,
		}, nil)
		notifier.EXPECT().Emit(gomock.Any())

		snapshot, err := service.Approve(context.Background(), movement.ID)
		assert.NoError(t, err)
		assert.True(t, snapshot.SaldoTotal.Equal(garantia))
		assert.True(t, snapshot.SaldoRetenido.Equal(garantia))
		assert.True(t, snapshot.SaldoDisponible.IsZero())
	})

	t.Run("Movement already resolved", func(t *testing.T) {
		service, movementRepo, auctionRepo, balanceRepo, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		auction := payableAuction(userID, "15000")
		movement := &domain.Movement{
			ID:        uuid.New(),
			AuctionID: auction.ID,
			UserID:    userID,
			Monto:     garantia,
			Estado:    domain.MovementAprobado,
		}

		movementRepo.EXPECT().GetByID(gomock.Any(), movement.ID).Return(movement, nil)
		auctionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), auction.ID).Return(auction, nil)
		movementRepo.EXPECT().GetByIDForUpdate(gomock.Any(), movement.ID).Return(movement, nil)
		_ = balanceRepo

		_, err := service.Approve(context.Background(), movement.ID)
		assert.Equal(t, apperrors.CodeInvalidStateTransition, apperrors.CodeOf(err))
	})

	t.Run("Missing movement", func(t *testing.T) {
		service, movementRepo, _, _, txManager, _ := NewMock(t)
		passthroughTx(txManager)

		id := uuid.New()
		movementRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := service.Approve(context.Background(), id)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestReject(t *testing.T) {
	userID := 7

	t.Run("Rejection stores the reasons", func(t *testing.T) {
		service, movementRepo, _, _, txManager, notifier := NewMock(t)
		passthroughTx(txManager)

		movement := &domain.Movement{
			ID:        uuid.New(),
			AuctionID: uuid.New(),
			UserID:    userID,
			Estado:    domain.MovementPendiente,
		}
		reasons := []string{"voucher_ilegible", "monto_incorrecto"}

		movementRepo.EXPECT().GetByIDForUpdate(gomock.Any(), movement.ID).Return(movement, nil)
		movementRepo.EXPECT().Reject(gomock.Any(), movement.ID, reasons).Return(nil)
		notifier.EXPECT().Emit(gomock.Any())

		err := service.Reject(context.Background(), movement.ID, reasons)
		assert.NoError(t, err)
	})

	t.Run("At least one reason is required", func(t *testing.T) {
		service, _, _, _, _, _ := NewMock(t)

		err := service.Reject(context.Background(), uuid.New(), nil)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})
}

func TestGetMovements(t *testing.T) {
	service, movementRepo, _, _, _, _ := NewMock(t)

	auctionID := uuid.New()
	movementRepo.EXPECT().FindByAuctionID(gomock.Any(), auctionID).Return(nil, errors.New("db error"))

	_, err := service.GetMovements(context.Background(), auctionID)
	assert.Error(t, err)
}
