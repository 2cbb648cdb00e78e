package dto

import "time"

type SubmitPaymentRequestDTO struct {
	Monto      string `json:"monto" example:"100.00"`
	VoucherRef string `json:"voucher_ref" example:"op-20260831-00123"`
}

type MovementResponseDTO struct {
	ID            string     `json:"id"`
	AuctionID     string     `json:"auction_id"`
	Monto         string     `json:"monto" example:"100.00"`
	Estado        string     `json:"estado" example:"pendiente"`
	VoucherRef    string     `json:"voucher_ref,omitempty"`
	RejectReasons []string   `json:"reject_reasons,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

type RejectPaymentRequestDTO struct {
	Reasons []string `json:"reasons" example:"voucher_ilegible,monto_incorrecto"`
}
