package paymentservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/notify"
	"github.com/jpalomino/subastas/internal/pg"
)

//go:generate mockgen -source=paymentservice.go -destination=paymentservice_mock.go -package=paymentservice

type MovementRepo interface {
	Create(ctx context.Context, m *domain.Movement) (*domain.Movement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movement, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Movement, error)
	FindByAuctionID(ctx context.Context, auctionID uuid.UUID) ([]domain.Movement, error)
	HasApproved(ctx context.Context, auctionID uuid.UUID) (bool, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID, reasons []string) error
}

type AuctionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Auction, error)
	TransitionEstado(ctx context.Context, id uuid.UUID, from, to string) error
}

type BalanceRepo interface {
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	Adjust(ctx context.Context, userID int, dTotal, dRetenido, dAplicado decimal.Decimal) (*domain.BalanceAccount, error)
}

type Notifier interface {
	Emit(event notify.Event)
}

type Service struct {
	movementRepo MovementRepo
	auctionRepo  AuctionRepo
	balanceRepo  BalanceRepo
	txManager    pg.TXManager
	notifier     Notifier
}

func New(movementRepo MovementRepo, auctionRepo AuctionRepo, balanceRepo BalanceRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		movementRepo: movementRepo,
		auctionRepo:  auctionRepo,
		balanceRepo:  balanceRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

// Submit registers a guarantee payment for review. No ledger effect until an
// admin approves it.
func (s *Service) Submit(ctx context.Context, userID int, auctionID uuid.UUID, monto decimal.Decimal, voucherRef string) (*domain.Movement, error) {
	if !domain.ValidAmount(monto) {
		return nil, apperrors.Validation(apperrors.CodeInvalidAmount, "amount must be positive with at most 2 decimals")
	}

	auction, err := s.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, apperrors.NotFound("auction not found")
	}
	if auction.WinnerID == nil || *auction.WinnerID != userID {
		return nil, apperrors.New(apperrors.KindAuthorization, apperrors.CodeNotCurrentWinner, "user is not the auction's registered winner")
	}
	if auction.Estado != domain.AuctionPendientePago {
		return nil, apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction is not payable")
	}

	now := time.Now()
	if now.Before(auction.FechaInicio) {
		return nil, apperrors.Validation(apperrors.CodeInvalidPaymentDate, "payment date is outside the auction window")
	}

	garantia := auction.Garantia()
	if !monto.Equal(garantia) {
		return nil, apperrors.Validation(apperrors.CodeInvalidAmount,
			fmt.Sprintf("payment must equal the guarantee of %s", garantia.StringFixed(2)))
	}

	approved, err := s.movementRepo.HasApproved(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if approved {
		zap.L().Info("auction already has approved payment", zap.String("auctionID", auctionID.String()))
		return nil, apperrors.Conflict(apperrors.CodeDuplicateApproved, "auction already has an approved payment")
	}

	movement := &domain.Movement{
		ID:          uuid.New(),
		AuctionID:   auctionID,
		UserID:      userID,
		Monto:       monto,
		Estado:      domain.MovementPendiente,
		VoucherRef:  voucherRef,
		SubmittedAt: now,
	}
	saved, err := s.movementRepo.Create(ctx, movement)
	if err != nil {
		zap.L().Error("can't save movement", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

// Approve moves the guarantee into the ledger: total and retenido rise
// together, disponible stays put. The movement CAS, the auction transition
// and the adjustment commit in one transaction.
func (s *Service) Approve(ctx context.Context, movementID uuid.UUID) (*domain.BalanceSnapshot, error) {
	var snapshot *domain.BalanceSnapshot
	var auctionID uuid.UUID
	var userID int

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		movement, err := s.movementRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return apperrors.NotFound("movement not found")
		}

		// lock order: auction, movement, balance
		auction, err := s.auctionRepo.GetByIDForUpdate(ctx, movement.AuctionID)
		if err != nil {
			return err
		}
		if auction == nil {
			return apperrors.NotFound("auction not found")
		}
		if auction.Estado != domain.AuctionPendientePago {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction is not payable")
		}

		movement, err = s.movementRepo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if movement.Estado != domain.MovementPendiente {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "movement is not pendiente")
		}

		if _, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, movement.UserID); err != nil {
			return err
		}

		if err := s.movementRepo.Approve(ctx, movementID); err != nil {
			return err
		}
		if err := s.auctionRepo.TransitionEstado(ctx, auction.ID, domain.AuctionPendientePago, domain.AuctionPagada); err != nil {
			return err
		}

		garantia := auction.Garantia()
		balance, err := s.balanceRepo.Adjust(ctx, movement.UserID, garantia, garantia, decimal.Zero)
		if err != nil {
			return err
		}
		snapshot = balance.Snapshot()
		auctionID = auction.ID
		userID = movement.UserID
		return nil
	})
	if err != nil {
		zap.L().Error("failed to approve payment", zap.String("movementID", movementID.String()), zap.Error(err))
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Type:            notify.EventPaymentApproved,
		AuctionID:       auctionID,
		UserID:          userID,
		SaldoTotal:      snapshot.SaldoTotal,
		SaldoRetenido:   snapshot.SaldoRetenido,
		SaldoAplicado:   snapshot.SaldoAplicado,
		SaldoDisponible: snapshot.SaldoDisponible,
	})
	return snapshot, nil
}

// Reject closes the movement with the given reason codes. No ledger effect;
// the auction stays payable and the client may submit again.
func (s *Service) Reject(ctx context.Context, movementID uuid.UUID, reasons []string) error {
	if len(reasons) == 0 {
		return apperrors.Validation(apperrors.CodeInvalidInput, "at least one rejection reason is required")
	}

	var auctionID uuid.UUID
	var userID int
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		movement, err := s.movementRepo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return apperrors.NotFound("movement not found")
		}
		if movement.Estado != domain.MovementPendiente {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "movement is not pendiente")
		}
		auctionID = movement.AuctionID
		userID = movement.UserID
		return s.movementRepo.Reject(ctx, movementID, reasons)
	})
	if err != nil {
		zap.L().Error("failed to reject payment", zap.String("movementID", movementID.String()), zap.Error(err))
		return err
	}

	s.notifier.Emit(notify.Event{
		Type:      notify.EventPaymentRejected,
		AuctionID: auctionID,
		UserID:    userID,
	})
	return nil
}

// GetMovements lists an auction's payment submissions, newest first.
func (s *Service) GetMovements(ctx context.Context, auctionID uuid.UUID) ([]domain.Movement, error) {
	movements, err := s.movementRepo.FindByAuctionID(ctx, auctionID)
	if err != nil {
		zap.L().Error("failed to get movements", zap.Error(err))
		return nil, err
	}
	return movements, nil
}
