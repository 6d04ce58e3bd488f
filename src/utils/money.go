package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

func exponent(currency string) int32 {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return 0
	}
	return 2
}

// FromMinorUnits converts a gateway amount (cents for most currencies) to
// major units.
func FromMinorUnits(amount int64, currency string) decimal.Decimal {
	return decimal.New(amount, -exponent(currency))
}

// ToMinorUnits converts a major unit amount to the gateway's integer form,
// rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	return amount.Shift(exponent(currency)).Round(0).IntPart()
}

// LineTotal multiplies a unit price by a quantity without float drift.
func LineTotal(unitPrice float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(qty))).Round(2)
}
