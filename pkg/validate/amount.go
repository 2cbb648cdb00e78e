package validate

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// amountPattern accepts plain positive decimals with at most two places.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ParseAmount parses a wire amount string into a decimal, rejecting negative
// values, exponents and sub-cent precision.
func ParseAmount(s string) (decimal.Decimal, bool) {
	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

var documentPattern = regexp.MustCompile(`^[0-9A-Za-z-]{6,20}$`)

// IsDocumentNumber accepts DNI/RUC-style identifiers: 6 to 20 alphanumeric
// characters or dashes.
func IsDocumentNumber(s string) bool {
	return documentPattern.MatchString(s)
}
