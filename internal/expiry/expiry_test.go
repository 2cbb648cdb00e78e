package expiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/notify"
)

// inlinePool runs tasks on the calling goroutine so sweeps finish before
// assertions run.
type inlinePool struct{}

func (inlinePool) AddTask(_ context.Context, task Task) error { return task() }
func (inlinePool) Close()                                     {}

func NewMockService(t *testing.T) (*Service, *MockAuctionRepo, *MockNotifier) {
	ctrl := gomock.NewController(t)
	auctionRepo := NewMockAuctionRepo(ctrl)
	notifier := NewMockNotifier(ctrl)
	svc := &Service{
		auctionRepo:   auctionRepo,
		notifier:      notifier,
		workerPool:    inlinePool{},
		sweepInterval: time.Minute,
	}
	return svc, auctionRepo, notifier
}

func TestService_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("overdue auction is marked vencida", func(t *testing.T) {
		svc, auctionRepo, notifier := NewMockService(t)

		winner := 7
		auction := domain.Auction{ID: uuid.New(), Estado: domain.AuctionPendientePago, WinnerID: &winner}

		auctionRepo.EXPECT().FindExpirable(ctx, gomock.Any(), uint32(sweepLimit)).
			Return([]domain.Auction{auction}, nil)
		auctionRepo.EXPECT().TransitionEstado(ctx, auction.ID, domain.AuctionPendientePago, domain.AuctionVencida).
			Return(nil)
		notifier.EXPECT().Emit(gomock.Any()).Do(func(event notify.Event) {
			assert.Equal(t, notify.EventAuctionExpired, event.Type)
			assert.Equal(t, auction.ID, event.AuctionID)
			assert.Equal(t, winner, event.UserID)
		})

		svc.sweep(ctx)
	})

	t.Run("lost transition race is not an error", func(t *testing.T) {
		svc, auctionRepo, _ := NewMockService(t)

		auction := domain.Auction{ID: uuid.New(), Estado: domain.AuctionPendientePago}

		auctionRepo.EXPECT().FindExpirable(ctx, gomock.Any(), uint32(sweepLimit)).
			Return([]domain.Auction{auction}, nil)
		auctionRepo.EXPECT().TransitionEstado(ctx, auction.ID, domain.AuctionPendientePago, domain.AuctionVencida).
			Return(errors.New("auction is not in state pendiente_pago"))

		svc.sweep(ctx)
	})

	t.Run("fetch failure skips the cycle", func(t *testing.T) {
		svc, auctionRepo, _ := NewMockService(t)

		auctionRepo.EXPECT().FindExpirable(ctx, gomock.Any(), uint32(sweepLimit)).
			Return(nil, errors.New("connection refused"))

		svc.sweep(ctx)
	})

	t.Run("nothing expirable", func(t *testing.T) {
		svc, auctionRepo, _ := NewMockService(t)

		auctionRepo.EXPECT().FindExpirable(ctx, gomock.Any(), uint32(sweepLimit)).
			Return(nil, nil)

		svc.sweep(ctx)
	})
}
