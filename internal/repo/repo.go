package repo

import (
	"github.com/jpalomino/subastas/internal/pg"
	auctionrepo "github.com/jpalomino/subastas/internal/repo/auction-repo"
	balancerepo "github.com/jpalomino/subastas/internal/repo/balance-repo"
	billingrepo "github.com/jpalomino/subastas/internal/repo/billing-repo"
	movementrepo "github.com/jpalomino/subastas/internal/repo/movement-repo"
	refundrepo "github.com/jpalomino/subastas/internal/repo/refund-repo"
	userrepo "github.com/jpalomino/subastas/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo     *userrepo.Repository
	BalanceRepo  *balancerepo.Repository
	AuctionRepo  *auctionrepo.Repository
	MovementRepo *movementrepo.Repository
	BillingRepo  *billingrepo.Repository
	RefundRepo   *refundrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		BalanceRepo:  balancerepo.New(conn, txManager),
		AuctionRepo:  auctionrepo.New(conn, txManager),
		MovementRepo: movementrepo.New(conn),
		BillingRepo:  billingrepo.New(conn),
		RefundRepo:   refundrepo.New(conn),
	}
}
