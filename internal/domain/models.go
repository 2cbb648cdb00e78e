package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	RoleClient string = "client"
	RoleAdmin  string = "admin"
)

// BalanceAccount is the per-user ledger row. SaldoDisponible is never stored,
// it is derived from the other three figures on every read.
type BalanceAccount struct {
	ID            int             `db:"id"`
	UserID        int             `db:"user_id"`
	SaldoTotal    decimal.Decimal `db:"saldo_total"`
	SaldoRetenido decimal.Decimal `db:"saldo_retenido"`
	SaldoAplicado decimal.Decimal `db:"saldo_aplicado"`
	Version       int64           `db:"version"`
}

// Disponible returns max(0, total - retenido - aplicado).
func (b *BalanceAccount) Disponible() decimal.Decimal {
	d := b.SaldoTotal.Sub(b.SaldoRetenido).Sub(b.SaldoAplicado)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// BalanceSnapshot is what every ledger-affecting operation returns.
type BalanceSnapshot struct {
	SaldoTotal      decimal.Decimal
	SaldoRetenido   decimal.Decimal
	SaldoAplicado   decimal.Decimal
	SaldoDisponible decimal.Decimal
}

func (b *BalanceAccount) Snapshot() *BalanceSnapshot {
	return &BalanceSnapshot{
		SaldoTotal:      b.SaldoTotal,
		SaldoRetenido:   b.SaldoRetenido,
		SaldoAplicado:   b.SaldoAplicado,
		SaldoDisponible: b.Disponible(),
	}
}

type Auction struct {
	ID              uuid.UUID       `db:"id"`
	Estado          string          `db:"estado"`
	WinnerID        *int            `db:"winner_id"`
	MontoOferta     decimal.Decimal `db:"monto_oferta"`
	FechaInicio     time.Time       `db:"fecha_inicio"`
	FechaLimitePago time.Time       `db:"fecha_limite_pago"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

const (
	AuctionProgramada    string = "programada"
	AuctionActiva        string = "activa"
	AuctionPendientePago string = "pendiente_pago"
	AuctionPagada        string = "pagada"
	AuctionGanada        string = "ganada"
	AuctionPerdida       string = "perdida"
	AuctionPenalizada    string = "penalizada"
	AuctionFacturada     string = "facturada"
	AuctionVencida       string = "vencida"
	AuctionCancelada     string = "cancelada"
)

// Garantia is the guarantee fixed at winner assignment: 8% of the offer.
func (a *Auction) Garantia() decimal.Decimal {
	return Garantia(a.MontoOferta)
}

// Movement is a guarantee payment submission. An auction can accumulate many
// rejected movements; at most one ever reaches aprobado.
type Movement struct {
	ID            uuid.UUID       `db:"id"`
	AuctionID     uuid.UUID       `db:"auction_id"`
	UserID        int             `db:"user_id"`
	Monto         decimal.Decimal `db:"monto"`
	Estado        string          `db:"estado"`
	VoucherRef    string          `db:"voucher_ref"`
	RejectReasons []string        `db:"reject_reasons"`
	SubmittedAt   time.Time       `db:"submitted_at"`
	ResolvedAt    *time.Time      `db:"resolved_at"`
}

const (
	MovementPendiente string = "pendiente"
	MovementAprobado  string = "aprobado"
	MovementRechazado string = "rechazado"
)

type Billing struct {
	ID             uuid.UUID  `db:"id"`
	AuctionID      uuid.UUID  `db:"auction_id"`
	UserID         int        `db:"user_id"`
	DocumentType   string     `db:"document_type"`
	DocumentNumber string     `db:"document_number"`
	DocumentName   string     `db:"document_name"`
	Completed      bool       `db:"completed"`
	CompletedAt    *time.Time `db:"completed_at"`
}

type Refund struct {
	ID              uuid.UUID       `db:"id"`
	AuctionID       uuid.UUID       `db:"auction_id"`
	UserID          int             `db:"user_id"`
	MontoSolicitado decimal.Decimal `db:"monto_solicitado"`
	TipoReembolso   string          `db:"tipo_reembolso"`
	Estado          string          `db:"estado"`
	MontoLiberado   decimal.Decimal `db:"monto_liberado"`
	VoucherRef      string          `db:"voucher_ref"`
	RequestedAt     time.Time       `db:"requested_at"`
	ResolvedAt      *time.Time      `db:"resolved_at"`
}

const (
	RefundSolicitado string = "solicitado"
	RefundConfirmado string = "confirmado"
	RefundRechazado  string = "rechazado"
	RefundProcesado  string = "procesado"
	RefundCancelado  string = "cancelado"

	RefundMantenerSaldo  string = "mantener_saldo"
	RefundDevolverDinero string = "devolver_dinero"
)
