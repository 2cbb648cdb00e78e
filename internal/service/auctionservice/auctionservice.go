package auctionservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/notify"
	"github.com/jpalomino/subastas/internal/pg"
)

//go:generate mockgen -source=auctionservice.go -destination=auctionservice_mock.go -package=auctionservice

type AuctionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Auction, error)
	TransitionEstado(ctx context.Context, id uuid.UUID, from, to string) error
}

type MovementRepo interface {
	HasApproved(ctx context.Context, auctionID uuid.UUID) (bool, error)
}

type BillingRepo interface {
	Create(ctx context.Context, b *domain.Billing) (*domain.Billing, error)
}

type BalanceRepo interface {
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	Adjust(ctx context.Context, userID int, dTotal, dRetenido, dAplicado decimal.Decimal) (*domain.BalanceAccount, error)
}

type Notifier interface {
	Emit(event notify.Event)
}

type Service struct {
	auctionRepo  AuctionRepo
	movementRepo MovementRepo
	billingRepo  BillingRepo
	balanceRepo  BalanceRepo
	txManager    pg.TXManager
	notifier     Notifier
}

func New(auctionRepo AuctionRepo, movementRepo MovementRepo, billingRepo BillingRepo, balanceRepo BalanceRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		auctionRepo:  auctionRepo,
		movementRepo: movementRepo,
		billingRepo:  billingRepo,
		balanceRepo:  balanceRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

func validOutcome(outcome string) bool {
	switch outcome {
	case domain.AuctionGanada, domain.AuctionPerdida, domain.AuctionPenalizada:
		return true
	}
	return false
}

// SetResult records the competition outcome for a paid auction. ganada and
// perdida leave the ledger untouched (held funds stay held until billing or a
// processed refund). penalizada forfeits 30% of the guarantee and releases
// the remaining 70% into disponible, as one compound adjustment committed
// atomically with the auction transition.
func (s *Service) SetResult(ctx context.Context, auctionID uuid.UUID, outcome string) (*domain.BalanceSnapshot, error) {
	if !validOutcome(outcome) {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "outcome must be ganada, perdida or penalizada")
	}

	var snapshot *domain.BalanceSnapshot
	var userID int

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		auction, err := s.auctionRepo.GetByIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if auction == nil {
			return apperrors.NotFound("auction not found")
		}
		if auction.Estado != domain.AuctionPagada {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction is not pagada")
		}
		if auction.WinnerID == nil {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction has no registered winner")
		}

		approved, err := s.movementRepo.HasApproved(ctx, auctionID)
		if err != nil {
			return err
		}
		if !approved {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction has no approved payment")
		}

		userID = *auction.WinnerID
		balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if balance == nil {
			return apperrors.NotFound("balance account not found")
		}

		if err := s.auctionRepo.TransitionEstado(ctx, auctionID, domain.AuctionPagada, outcome); err != nil {
			return err
		}

		switch outcome {
		case domain.AuctionGanada:
			_, err := s.billingRepo.Create(ctx, &domain.Billing{
				ID:        uuid.New(),
				AuctionID: auctionID,
				UserID:    userID,
			})
			if err != nil {
				return err
			}
			snapshot = balance.Snapshot()

		case domain.AuctionPerdida:
			snapshot = balance.Snapshot()

		case domain.AuctionPenalizada:
			garantia := auction.Garantia()
			penalty := domain.Penalty(garantia)
			adjusted, err := s.balanceRepo.Adjust(ctx, userID, penalty.Neg(), garantia.Neg(), decimal.Zero)
			if err != nil {
				return err
			}
			snapshot = adjusted.Snapshot()
			zap.L().Info("penalty applied",
				zap.String("auctionID", auctionID.String()),
				zap.String("penalty", penalty.StringFixed(2)),
			)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to set competition result", zap.String("auctionID", auctionID.String()), zap.Error(err))
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Type:            notify.EventResultRecorded,
		AuctionID:       auctionID,
		UserID:          userID,
		SaldoTotal:      snapshot.SaldoTotal,
		SaldoRetenido:   snapshot.SaldoRetenido,
		SaldoAplicado:   snapshot.SaldoAplicado,
		SaldoDisponible: snapshot.SaldoDisponible,
	})
	return snapshot, nil
}
