package domain

// Side indicates whether an order is a buy (bid) or sell (ask).
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide converts user input into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	default:
		return "", &ValidationError{Message: "side must be one of: buy, sell"}
	}
}

// Opposite returns the other side of the market.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Order represents one unit of trading intent resting in the book.
//
// Price and Quantity are integers in the instrument's minor units; the
// conversion from decimal amounts happens at the service boundary, never
// inside the engine. Sequence is assigned by the book at insertion time,
// is strictly increasing, and is the sole time-priority key. Quantity is
// always > 0 while the order exists in the book: zero-quantity orders are
// rejected before creation and fully filled orders are removed immediately.
type Order struct {
	ID       uint64
	Side     Side
	Price    uint64
	Quantity uint64
	Sequence uint64
}
