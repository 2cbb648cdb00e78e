package domain

import "github.com/shopspring/decimal"

var (
	garantiaRate = decimal.NewFromFloat(0.08)
	penaltyRate  = decimal.NewFromFloat(0.30)

	// I1Tolerance absorbs accumulated rounding when checking
	// retenido + aplicado <= total.
	I1Tolerance = decimal.NewFromFloat(0.01)
)

// Round2 rounds half-up to 2 decimal places. All stored amounts pass through
// it exactly once, at the point where they are first computed.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Garantia computes the guarantee for a winning offer: round2(offer * 0.08).
func Garantia(montoOferta decimal.Decimal) decimal.Decimal {
	return Round2(montoOferta.Mul(garantiaRate))
}

// Penalty computes the forfeited share of a held guarantee:
// round2(garantia * 0.30).
func Penalty(garantia decimal.Decimal) decimal.Decimal {
	return Round2(garantia.Mul(penaltyRate))
}

// ValidAmount reports whether d is positive with at most 2 decimal places.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Exponent() >= -2
}
