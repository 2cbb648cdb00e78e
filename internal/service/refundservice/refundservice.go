package refundservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/notify"
	"github.com/jpalomino/subastas/internal/pg"
)

//go:generate mockgen -source=refundservice.go -destination=refundservice_mock.go -package=refundservice

type RefundRepo interface {
	Create(ctx context.Context, rf *domain.Refund) (*domain.Refund, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Refund, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Refund, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Refund, error)
	TransitionEstado(ctx context.Context, id uuid.UUID, from, to string) error
	SetVoucherRef(ctx context.Context, id uuid.UUID, voucherRef string) error
	SetMontoLiberado(ctx context.Context, id uuid.UUID, monto decimal.Decimal) error
	SumReleasedByAuction(ctx context.Context, auctionID uuid.UUID) (decimal.Decimal, error)
}

type AuctionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Auction, error)
}

type MovementRepo interface {
	HasApproved(ctx context.Context, auctionID uuid.UUID) (bool, error)
}

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	Adjust(ctx context.Context, userID int, dTotal, dRetenido, dAplicado decimal.Decimal) (*domain.BalanceAccount, error)
}

type Notifier interface {
	Emit(event notify.Event)
}

const (
	DecisionConfirm = "confirm"
	DecisionReject  = "reject"
)

type Service struct {
	refundRepo   RefundRepo
	auctionRepo  AuctionRepo
	movementRepo MovementRepo
	balanceRepo  BalanceRepo
	txManager    pg.TXManager
	notifier     Notifier
}

func New(refundRepo RefundRepo, auctionRepo AuctionRepo, movementRepo MovementRepo, balanceRepo BalanceRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		refundRepo:   refundRepo,
		auctionRepo:  auctionRepo,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

// heldContribution is the auction's current share of saldo_retenido. It is
// recomputed wherever the held/available distinction matters; a flag captured
// at request time would go stale the moment a penalty or billing lands.
func (s *Service) heldContribution(ctx context.Context, auction *domain.Auction) (decimal.Decimal, error) {
	switch auction.Estado {
	case domain.AuctionPagada, domain.AuctionGanada, domain.AuctionPerdida:
	default:
		// penalizada released the hold, facturada applied it
		return decimal.Zero, nil
	}
	approved, err := s.movementRepo.HasApproved(ctx, auction.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if !approved {
		return decimal.Zero, nil
	}
	// processed refunds already released part of the hold; without this the
	// same guarantee would stay refundable forever
	released, err := s.refundRepo.SumReleasedByAuction(ctx, auction.ID)
	if err != nil {
		return decimal.Zero, err
	}
	held := auction.Garantia().Sub(released)
	if held.IsNegative() {
		return decimal.Zero, nil
	}
	return held, nil
}

// Request opens a refund petition. No ledger effect; the money moves only
// when an admin processes the confirmed request.
func (s *Service) Request(ctx context.Context, userID int, auctionID uuid.UUID, monto decimal.Decimal, tipo string) (*domain.Refund, error) {
	if tipo != domain.RefundMantenerSaldo && tipo != domain.RefundDevolverDinero {
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "tipo_reembolso must be mantener_saldo or devolver_dinero")
	}
	if !domain.ValidAmount(monto) {
		return nil, apperrors.Validation(apperrors.CodeInvalidAmount, "amount must be positive with at most 2 decimals")
	}

	var saved *domain.Refund
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		auction, err := s.auctionRepo.GetByID(ctx, auctionID)
		if err != nil {
			return err
		}
		if auction == nil {
			return apperrors.NotFound("auction not found")
		}
		if auction.WinnerID == nil || *auction.WinnerID != userID {
			return apperrors.New(apperrors.KindAuthorization, apperrors.CodeNotCurrentWinner, "user is not the auction's registered winner")
		}

		balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
		if err != nil {
			return err
		}
		if balance == nil {
			return apperrors.NotFound("balance account not found")
		}

		// The requestable ceiling is the free balance plus whatever this
		// auction still holds in retenido: a refund of a lost auction's
		// guarantee targets money that is retained, not disponible.
		held, err := s.heldContribution(ctx, auction)
		if err != nil {
			return err
		}
		if monto.GreaterThan(balance.Disponible().Add(held)) {
			return apperrors.Conflict(apperrors.CodeInsufficientAvailable, "requested amount exceeds refundable balance")
		}

		saved, err = s.refundRepo.Create(ctx, &domain.Refund{
			ID:              uuid.New(),
			AuctionID:       auctionID,
			UserID:          userID,
			MontoSolicitado: monto,
			TipoReembolso:   tipo,
			Estado:          domain.RefundSolicitado,
			RequestedAt:     time.Now(),
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to request refund", zap.String("auctionID", auctionID.String()), zap.Error(err))
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Type:      notify.EventRefundRequested,
		AuctionID: auctionID,
		UserID:    userID,
	})
	return saved, nil
}

// Manage is the admin authorization gate: confirm or reject a requested
// refund. Neither decision touches the ledger.
func (s *Service) Manage(ctx context.Context, refundID uuid.UUID, decision string) (*domain.Refund, error) {
	var to string
	switch decision {
	case DecisionConfirm:
		to = domain.RefundConfirmado
	case DecisionReject:
		to = domain.RefundRechazado
	default:
		return nil, apperrors.Validation(apperrors.CodeInvalidInput, "decision must be confirm or reject")
	}

	var refund *domain.Refund
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		refund, err = s.refundRepo.GetByIDForUpdate(ctx, refundID)
		if err != nil {
			return err
		}
		if refund == nil {
			return apperrors.NotFound("refund not found")
		}
		if refund.Estado != domain.RefundSolicitado {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "refund is not solicitado")
		}
		if err := s.refundRepo.TransitionEstado(ctx, refundID, domain.RefundSolicitado, to); err != nil {
			return err
		}
		refund.Estado = to
		return nil
	})
	if err != nil {
		zap.L().Error("failed to manage refund", zap.String("refundID", refundID.String()), zap.Error(err))
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Type:      notify.EventRefundManaged,
		AuctionID: refund.AuctionID,
		UserID:    refund.UserID,
	})
	return refund, nil
}

// Cancel lets the client withdraw consent on a confirmed refund before it is
// processed.
func (s *Service) Cancel(ctx context.Context, userID int, refundID uuid.UUID) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		refund, err := s.refundRepo.GetByIDForUpdate(ctx, refundID)
		if err != nil {
			return err
		}
		if refund == nil {
			return apperrors.NotFound("refund not found")
		}
		if refund.UserID != userID {
			return apperrors.Forbidden("refund belongs to another user")
		}
		if refund.Estado != domain.RefundConfirmado {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "refund is not confirmado")
		}
		return s.refundRepo.TransitionEstado(ctx, refundID, domain.RefundConfirmado, domain.RefundCancelado)
	})
	if err != nil {
		zap.L().Error("failed to cancel refund", zap.String("refundID", refundID.String()), zap.Error(err))
	}
	return err
}

// Process settles a confirmed refund. Whether the amount is still held or
// already available is decided here, against the auction's live retenido
// contribution, never against the state at request time.
func (s *Service) Process(ctx context.Context, refundID uuid.UUID, voucherRef string) (*domain.BalanceSnapshot, error) {
	var snapshot *domain.BalanceSnapshot
	var auctionID uuid.UUID
	var userID int

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		refund, err := s.refundRepo.GetByIDForUpdate(ctx, refundID)
		if err != nil {
			return err
		}
		if refund == nil {
			return apperrors.NotFound("refund not found")
		}
		if refund.Estado != domain.RefundConfirmado {
			return apperrors.Conflict(apperrors.CodeInvalidStateTransition, "refund is not confirmado")
		}

		auction, err := s.auctionRepo.GetByIDForUpdate(ctx, refund.AuctionID)
		if err != nil {
			return err
		}
		if auction == nil {
			return apperrors.NotFound("auction not found")
		}

		balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, refund.UserID)
		if err != nil {
			return err
		}
		if balance == nil {
			return apperrors.NotFound("balance account not found")
		}

		held, err := s.heldContribution(ctx, auction)
		if err != nil {
			return err
		}

		monto := refund.MontoSolicitado
		fromHeld := held.GreaterThanOrEqual(monto)
		if !fromHeld && monto.GreaterThan(balance.Disponible()) {
			return apperrors.Conflict(apperrors.CodeInsufficientAvailable, "requested amount exceeds available balance")
		}

		if err := s.refundRepo.TransitionEstado(ctx, refundID, domain.RefundConfirmado, domain.RefundProcesado); err != nil {
			return err
		}
		if fromHeld {
			if err := s.refundRepo.SetMontoLiberado(ctx, refundID, monto); err != nil {
				return err
			}
		}
		if voucherRef != "" {
			if err := s.refundRepo.SetVoucherRef(ctx, refundID, voucherRef); err != nil {
				return err
			}
		}

		switch {
		case refund.TipoReembolso == domain.RefundDevolverDinero && fromHeld:
			// money leaves the system straight out of the hold
			balance, err = s.balanceRepo.Adjust(ctx, refund.UserID, monto.Neg(), monto.Neg(), decimal.Zero)
		case refund.TipoReembolso == domain.RefundDevolverDinero:
			// money leaves from disponible
			balance, err = s.balanceRepo.Adjust(ctx, refund.UserID, monto.Neg(), decimal.Zero, decimal.Zero)
		case refund.TipoReembolso == domain.RefundMantenerSaldo && fromHeld:
			// release the hold into disponible, total untouched
			balance, err = s.balanceRepo.Adjust(ctx, refund.UserID, decimal.Zero, monto.Neg(), decimal.Zero)
		default:
			// mantener_saldo on an already-available amount: the money is
			// already counted in disponible, adjusting again would
			// double-count. The processed row records the client's consent.
		}
		if err != nil {
			return err
		}

		snapshot = balance.Snapshot()
		auctionID = refund.AuctionID
		userID = refund.UserID
		return nil
	})
	if err != nil {
		zap.L().Error("failed to process refund", zap.String("refundID", refundID.String()), zap.Error(err))
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Type:            notify.EventRefundProcessed,
		AuctionID:       auctionID,
		UserID:          userID,
		SaldoTotal:      snapshot.SaldoTotal,
		SaldoRetenido:   snapshot.SaldoRetenido,
		SaldoAplicado:   snapshot.SaldoAplicado,
		SaldoDisponible: snapshot.SaldoDisponible,
	})
	return snapshot, nil
}

// GetRefunds lists a user's refunds, newest first.
func (s *Service) GetRefunds(ctx context.Context, userID int) ([]domain.Refund, error) {
	refunds, err := s.refundRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch refunds", zap.Error(err))
		return nil, err
	}
	return refunds, nil
}
