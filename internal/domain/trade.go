package domain

import "time"

// Trade represents a matched execution between a maker and a taker order.
//
// Price is always the resting (maker) order's price, never the incoming
// order's limit price: the taker receives at least as good a price as it
// was willing to accept.
type Trade struct {
	Price    uint64 // minor units of the quote asset
	Quantity uint64 // minor units of the base asset
	MakerID  uint64
	TakerID  uint64
}

// Execution is a Trade as recorded on the execution tape, stamped by the
// service layer. The engine itself never assigns ids or timestamps.
type Execution struct {
	ExecutionID string
	Trade       Trade
	ExecutedAt  time.Time
}
