// Package notify delivers best-effort notifications after ledger-affecting
// transitions. Delivery is fire-and-forget: a failed or dropped notification
// never rolls back or blocks the transition that produced it.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EventPaymentApproved  = "payment_approved"
	EventPaymentRejected  = "payment_rejected"
	EventResultRecorded   = "result_recorded"
	EventBillingCompleted = "billing_completed"
	EventRefundRequested  = "refund_requested"
	EventRefundManaged    = "refund_managed"
	EventRefundProcessed  = "refund_processed"
	EventAuctionExpired   = "auction_expired"
)

type Event struct {
	Type            string          `json:"type"`
	AuctionID       uuid.UUID       `json:"auction_id"`
	UserID          int             `json:"user_id"`
	SaldoTotal      decimal.Decimal `json:"saldo_total"`
	SaldoRetenido   decimal.Decimal `json:"saldo_retenido"`
	SaldoAplicado   decimal.Decimal `json:"saldo_aplicado"`
	SaldoDisponible decimal.Decimal `json:"saldo_disponible"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// Publisher pushes one event to one destination.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

const (
	bufferSize     = 256
	workers        = 4
	publishTimeout = 5 * time.Second
)

type Dispatcher struct {
	events     chan Event
	publishers []Publisher
	wg         sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(publishers ...Publisher) *Dispatcher {
	return &Dispatcher{
		events:     make(chan Event, bufferSize),
		publishers: publishers,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	zap.L().Info("notification dispatcher started", zap.Int("publishers", len(d.publishers)))
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}

	go func() {
		<-ctx.Done()
		// Emit checks the flag under the same lock, so no send can race
		// with the close
		d.mu.Lock()
		d.closed = true
		close(d.events)
		d.mu.Unlock()
	}()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.events {
		for _, p := range d.publishers {
			pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
			if err := p.Publish(pubCtx, event); err != nil {
				zap.L().Warn("notification publish failed",
					zap.String("event", event.Type),
					zap.String("auctionID", event.AuctionID.String()),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

// Emit enqueues the event without blocking. A full buffer or a stopped
// dispatcher drops the event with a log line; requests draining during
// shutdown may still land here after the channel is closed.
func (d *Dispatcher) Emit(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		zap.L().Warn("dispatcher stopped, dropping event", zap.String("event", event.Type))
		return
	}
	select {
	case d.events <- event:
	default:
		zap.L().Warn("notification buffer full, dropping event", zap.String("event", event.Type))
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
