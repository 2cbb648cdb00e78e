package service

import (
	"github.com/jpalomino/subastas/internal/handlers/auction"
	"github.com/jpalomino/subastas/internal/handlers/auth"
	"github.com/jpalomino/subastas/internal/handlers/balance"
	"github.com/jpalomino/subastas/internal/handlers/billing"
	"github.com/jpalomino/subastas/internal/handlers/payment"
	"github.com/jpalomino/subastas/internal/handlers/refund"

	pkgauth "github.com/jpalomino/subastas/pkg/auth"

	"github.com/jpalomino/subastas/internal/config"
	"github.com/jpalomino/subastas/internal/notify"
	"github.com/jpalomino/subastas/internal/pg"
	"github.com/jpalomino/subastas/internal/repo"
	authservice "github.com/jpalomino/subastas/internal/service/authservice"
	auctionservice "github.com/jpalomino/subastas/internal/service/auctionservice"
	balanceservice "github.com/jpalomino/subastas/internal/service/balanceservice"
	billingservice "github.com/jpalomino/subastas/internal/service/billingservice"
	paymentservice "github.com/jpalomino/subastas/internal/service/paymentservice"
	refundservice "github.com/jpalomino/subastas/internal/service/refundservice"
)

type Notifier interface {
	Emit(event notify.Event)
}

type Services struct {
	AuthService    auth.Service
	BalanceService balance.Service
	PaymentService payment.Service
	AuctionService auction.Service
	BillingService billing.Service
	RefundService  refund.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, notifier Notifier) *Services {
	balanceService := balanceservice.New(repo.BalanceRepo)
	authService := authservice.New(repo.UserRepo, balanceService, &pkgauth.HashService{}, &pkgauth.JWTService{}, cfg.TokenTTL)
	paymentService := paymentservice.New(repo.MovementRepo, repo.AuctionRepo, repo.BalanceRepo, txManager, notifier)
	auctionService := auctionservice.New(repo.AuctionRepo, repo.MovementRepo, repo.BillingRepo, repo.BalanceRepo, txManager, notifier)
	billingService := billingservice.New(repo.BillingRepo, repo.AuctionRepo, repo.BalanceRepo, txManager, notifier)
	refundService := refundservice.New(repo.RefundRepo, repo.AuctionRepo, repo.MovementRepo, repo.BalanceRepo, txManager, notifier)

	return &Services{
		AuthService:    authService,
		BalanceService: balanceService,
		PaymentService: paymentService,
		AuctionService: auctionService,
		BillingService: billingService,
		RefundService:  refundService,
	}
}
