package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Conversion between human-readable decimal amounts and the integer minor
// units the engine operates on. This is the only place decimal arithmetic
// happens; the engine never sees a decimal.Decimal.
//
// Conversion truncates any precision finer than the asset's minor unit
// (e.g. a third decimal place on a 2-decimal quote asset is dropped).

func toMinorUnits(d decimal.Decimal, decimals uint8) (uint64, error) {
	if d.IsNegative() {
		return 0, &ValidationError{Message: fmt.Sprintf("amount %s must not be negative", d)}
	}
	scaled := d.Shift(int32(decimals)).Truncate(0)
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, &ValidationError{Message: fmt.Sprintf("amount %s does not fit in %d-decimal minor units", d, decimals)}
	}
	return bi.Uint64(), nil
}

func fromMinorUnits(units uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(units).Shift(-int32(decimals))
}

// PriceToMinorUnits converts a decimal price to minor units of the quote asset.
func PriceToMinorUnits(price decimal.Decimal, quote Asset) (uint64, error) {
	return toMinorUnits(price, quote.Decimals)
}

// QuantityToMinorUnits converts a decimal quantity to minor units of the base asset.
func QuantityToMinorUnits(quantity decimal.Decimal, base Asset) (uint64, error) {
	return toMinorUnits(quantity, base.Decimals)
}

// PriceFromMinorUnits converts a minor-unit price back to a decimal.
func PriceFromMinorUnits(price uint64, quote Asset) decimal.Decimal {
	return fromMinorUnits(price, quote.Decimals)
}

// QuantityFromMinorUnits converts a minor-unit quantity back to a decimal.
func QuantityFromMinorUnits(quantity uint64, base Asset) decimal.Decimal {
	return fromMinorUnits(quantity, base.Decimals)
}

// FormatPrice renders a minor-unit price with the quote asset symbol,
// e.g. "100.5 USDT".
func FormatPrice(price uint64, quote Asset) string {
	return fmt.Sprintf("%s %s", PriceFromMinorUnits(price, quote), quote.Symbol)
}

// FormatQuantity renders a minor-unit quantity with the base asset symbol,
// e.g. "0.01 BTC".
func FormatQuantity(quantity uint64, base Asset) string {
	return fmt.Sprintf("%s %s", QuantityFromMinorUnits(quantity, base), base.Symbol)
}
