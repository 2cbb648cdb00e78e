// Package expiry sweeps pendiente_pago auctions whose payment deadline has
// passed and marks them vencida. A winner who never paid holds no guarantee,
// so expiry touches no balance.
package expiry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jpalomino/subastas/internal/config"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/notify"
)

const sweepLimit = 1000

var sweepingAuctions sync.Map

type AuctionRepo interface {
	FindExpirable(ctx context.Context, now time.Time, limit uint32) ([]domain.Auction, error)
	TransitionEstado(ctx context.Context, id uuid.UUID, from, to string) error
}

type Notifier interface {
	Emit(event notify.Event)
}

type Service struct {
	auctionRepo   AuctionRepo
	notifier      Notifier
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(cfg *config.Config, auctionRepo AuctionRepo, notifier Notifier) *Service {
	return &Service{
		auctionRepo:   auctionRepo,
		notifier:      notifier,
		workerPool:    NewWorkerPool(4, 64),
		sweepInterval: cfg.ExpiryInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Expiry sweeper started", zap.Duration("interval", s.sweepInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping expiry sweeper")
			s.workerPool.Close()
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	auctions, err := s.auctionRepo.FindExpirable(ctx, time.Now(), sweepLimit)
	if err != nil {
		zap.L().Error("Failed to fetch expirable auctions", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, auction := range auctions {
		auction := auction

		if _, loaded := sweepingAuctions.LoadOrStore(auction.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer sweepingAuctions.Delete(auction.ID)
				return s.expire(ctx, auction)
			})
			if err != nil {
				sweepingAuctions.Delete(auction.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error sweeping auctions", zap.Error(err))
	}
}

func (s *Service) expire(ctx context.Context, auction domain.Auction) error {
	err := s.auctionRepo.TransitionEstado(ctx, auction.ID, domain.AuctionPendientePago, domain.AuctionVencida)
	if err != nil {
		// Another transition won the race; the auction is no longer expirable.
		zap.L().Warn("Auction no longer expirable", zap.String("auctionID", auction.ID.String()), zap.Error(err))
		return nil
	}

	event := notify.Event{
		Type:      notify.EventAuctionExpired,
		AuctionID: auction.ID,
	}
	if auction.WinnerID != nil {
		event.UserID = *auction.WinnerID
	}
	s.notifier.Emit(event)

	zap.L().Info("Auction expired without payment", zap.String("auctionID", auction.ID.String()))
	return nil
}
