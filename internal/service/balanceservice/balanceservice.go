package balanceservice

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
)

//go:generate mockgen -source=balanceservice.go -destination=balanceservice_mock.go -package=balanceservice

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	CreateUserBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error)
	Adjust(ctx context.Context, userID int, dTotal, dRetenido, dAplicado decimal.Decimal) (*domain.BalanceAccount, error)
}

type Service struct {
	balanceRepo BalanceRepo
}

func New(balanceRepo BalanceRepo) *Service {
	return &Service{
		balanceRepo: balanceRepo,
	}
}

func (s *Service) GetSnapshot(ctx context.Context, userID int) (*domain.BalanceSnapshot, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return nil, apperrors.NotFound("balance account not found")
	}
	return balance.Snapshot(), nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.BalanceAccount, error) {
	balance, err := s.balanceRepo.CreateUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}
