package dto

import "github.com/jpalomino/subastas/internal/domain"

type BalanceSnapshotDTO struct {
	SaldoTotal      string `json:"saldo_total" example:"1200.00"`
	SaldoRetenido   string `json:"saldo_retenido" example:"1200.00"`
	SaldoAplicado   string `json:"saldo_aplicado" example:"0.00"`
	SaldoDisponible string `json:"saldo_disponible" example:"0.00"`
}

func NewBalanceSnapshotDTO(s *domain.BalanceSnapshot) BalanceSnapshotDTO {
	return BalanceSnapshotDTO{
		SaldoTotal:      s.SaldoTotal.StringFixed(2),
		SaldoRetenido:   s.SaldoRetenido.StringFixed(2),
		SaldoAplicado:   s.SaldoAplicado.StringFixed(2),
		SaldoDisponible: s.SaldoDisponible.StringFixed(2),
	}
}
