package billingservice

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

//go:generate mockgen -source=billingservice.go -destination=billingservice_mock.go -package=billingservice

type BillingRepo interface {
	GetByAuctionID(ctx context.Context, auctionID uuid.UUID) (*domain.Billing, error)
	GetByAuctionIDForUpdate(ctx context.Context, auctionID uuid.UUID) (*domain.Billing, error)
	Complete(ctx context.Context, id uuid.UUID, docType, docNumber, docName string) error
}

type AuctionRepo interface {
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

type DocumentInfo struct {
	Type   string
	Number string
	Name   string
}

type Service struct {
	billingRepo BillingRepo
	auctionRepo AuctionRepo
	balanceRepo BalanceRepo
	txManager   pg.TXManager
	notifier    Notifier
}

func New(billingRepo BillingRepo, auctionRepo AuctionRepo, balanceRepo BalanceRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		billingRepo: billingRepo,
		auctionRepo: auctionRepo,
		balanceRepo: balanceRepo,
		txManager:   txManager,
		notifier:    notifier,
	}
}

// Complete converts the held guarantee into applied balance: retenido and
// aplicado move in lockstep against an unchanged total, so disponible does
// not move. This is the only operation that increases saldo_aplicado.
func (s *Service) Complete(ctx context.Context, userID int, auctionID uuid.UUID, doc DocumentInfo) (*domain.BalanceSnapshot, error) {
	if doc.Type == "" || doc.Number == "" || doc.Name == "" {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "document type, number and name are required")
	}

	var snapshot *domain.BalanceSnapshot

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		auction, err := s.auctionRepo.GetByIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if auction == nil {
			return apperrors.NotFound("auction not found")
		}
		if auction.Estado != domain.AuctionGanada {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "auction is not ganada")
		}
		if auction.WinnerID == nil || *auction.WinnerID != userID {
			return apperrors.New(apperrors.KindAuthorization, apperrors.CodeNotCurrentWinner, "user is not the auction's registered winner")
		}

		billing, err := s.billingRepo.GetByAuctionIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if billing == nil {
			return apperrors.NotFound("billing record not found")
		}
		if billing.Completed {
			return apperrors.Conflict(apperrors.CodeBillingCompleted, "billing already completed")
		}

		if _, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, userID); err != nil {
			return err
		}

		if err := s.billingRepo.Complete(ctx, billing.ID, doc.Type, doc.Number, doc.Name); err != nil {
			return err
		}
		if err := s.auctionRepo.TransitionEstado(ctx, auctionID, domain.AuctionGanada, domain.AuctionFacturada); err != nil {
			return err
		}

		garantia := auction.Garantia()
		balance, err := s.balanceRepo.Adjust(ctx, userID, decimal.Zero, garantia.Neg(), garantia)
		if err != nil {
			return err
		}
		snapshot = balance.Snapshot()
		return nil
	})
	if err != nil {
		zap.L().Error("failed to complete billing", zap.String("auctionID", auctionID.String()), zap.Error(err))
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Type:            notify.EventBillingCompleted,
		AuctionID:       auctionID,
		UserID:          userID,
		SaldoTotal:      snapshot.SaldoTotal,
		SaldoRetenido:   snapshot.SaldoRetenido,
		SaldoAplicado:   snapshot.SaldoAplicado,
		SaldoDisponible: snapshot.SaldoDisponible,
	})
	return snapshot, nil
}
