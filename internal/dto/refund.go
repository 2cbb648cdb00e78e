package dto

import "time"

type RequestRefundRequestDTO struct {
	Monto         string `json:"monto" example:"680.00"`
	TipoReembolso string `json:"tipo_reembolso" example:"mantener_saldo"`
}

type ManageRefundRequestDTO struct {
	Decision string `json:"decision" example:"confirm"`
}

type ProcessRefundRequestDTO struct {
	VoucherRef string `json:"voucher_ref,omitempty" example:"tr-20260831-00042"`
}

type RefundResponseDTO struct {
	ID              string     `json:"id"`
	AuctionID       string     `json:"auction_id"`
	Monto           string     `json:"monto" example:"680.00"`
	TipoReembolso   string     `json:"tipo_reembolso"`
	Estado          string     `json:"estado" example:"solicitado"`
	VoucherRef      string     `json:"voucher_ref,omitempty"`
	RequestedAt     time.Time  `json:"requested_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}
