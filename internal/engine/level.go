package engine

import "github.com/efreitasn/limitbook/internal/domain"

// PriceLevel holds all orders resting at one price, in FIFO order, with a
// running total of their quantities.
//
// Invariants: TotalQuantity always equals the sum of the queued orders'
// quantities, and the level is empty exactly when TotalQuantity is zero.
// Orders are strictly ordered by ascending sequence; the front of the
// queue is the oldest order and the first to match.
type PriceLevel struct {
	Price         uint64
	orders        []*domain.Order
	TotalQuantity uint64
}

// NewPriceLevel creates an empty price level at the given price.
func NewPriceLevel(price uint64) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Add appends an order to the back of the queue.
func (l *PriceLevel) Add(o *domain.Order) {
	l.orders = append(l.orders, o)
	l.TotalQuantity += o.Quantity
}

// Front returns the oldest order at this level, or nil if the level is empty.
func (l *PriceLevel) Front() *domain.Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// RemoveFront pops and returns the oldest order, or nil if the level is empty.
func (l *PriceLevel) RemoveFront() *domain.Order {
	if len(l.orders) == 0 {
		return nil
	}
	o := l.orders[0]
	l.orders[0] = nil
	l.orders = l.orders[1:]
	l.TotalQuantity -= o.Quantity
	return o
}

// ShrinkFront reduces the front order's quantity in place after a partial
// fill. The order keeps its queue position and sequence number.
func (l *PriceLevel) ShrinkFront(newQuantity uint64) {
	if len(l.orders) == 0 {
		return
	}
	front := l.orders[0]
	l.TotalQuantity = l.TotalQuantity - front.Quantity + newQuantity
	front.Quantity = newQuantity
}

// Len returns the number of orders at this level.
func (l *PriceLevel) Len() int {
	return len(l.orders)
}

// IsEmpty returns true if no orders rest at this level.
func (l *PriceLevel) IsEmpty() bool {
	return len(l.orders) == 0
}
