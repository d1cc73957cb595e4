package domain

import "fmt"

// Asset describes a tradable asset: its display symbol and the number of
// decimal places of its minor unit (e.g. USD=2, BTC=8).
type Asset struct {
	Symbol   string
	Decimals uint8
}

func (a Asset) String() string {
	return a.Symbol
}

// Instrument pairs a base asset with a quote asset. Prices are quoted in
// minor units of the quote asset, quantities in minor units of the base.
type Instrument struct {
	Base  Asset
	Quote Asset
}

func NewInstrument(base, quote Asset) Instrument {
	return Instrument{Base: base, Quote: quote}
}

func (i Instrument) String() string {
	return fmt.Sprintf("%s/%s", i.Base.Symbol, i.Quote.Symbol)
}
