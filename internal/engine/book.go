package engine

import (
	"fmt"

	"github.com/google/btree"

	"github.com/efreitasn/limitbook/internal/domain"
)

// PriceQuantity is one aggregated price level as seen from the outside:
// a price and the total quantity resting at it.
type PriceQuantity struct {
	Price    uint64
	Quantity uint64
}

// levelOutcome describes the state of a price level after matching
// against it, guiding level removal and cache updates.
type levelOutcome int

const (
	// Level still has orders, was not the best level.
	levelMatched levelOutcome = iota
	// Level still has orders, was the best level (cache update needed).
	levelMatchedBest
	// Level is now empty and should be removed.
	levelEmptied
	// Level is now empty, was the best level (remove + cache update needed).
	levelEmptiedBest
)

// levelLess orders price levels by ascending price. Both sides share the
// ascending structure: the best ask is the tree minimum, the best bid the
// tree maximum, and descending bid iteration is a reverse traversal.
func levelLess(a, b *PriceLevel) bool {
	return a.Price < b.Price
}

// OrderBook maintains buy and sell orders for a single instrument with
// price-time priority matching.
//
// It is single-writer and not safe for concurrent mutation; callers that
// need concurrent access must serialize through one owner.
type OrderBook struct {
	instrument domain.Instrument
	bids       *btree.BTreeG[*PriceLevel]
	asks       *btree.BTreeG[*PriceLevel]
	// Order ids currently resting in the book. Membership only: an id
	// that fully traded away may be reused.
	resting      map[uint64]struct{}
	nextSequence uint64

	bestBid    PriceQuantity
	hasBestBid bool
	bestAsk    PriceQuantity
	hasBestAsk bool
}

// NewOrderBook creates an empty order book for the given instrument.
func NewOrderBook(instrument domain.Instrument) *OrderBook {
	const degree = 32
	return &OrderBook{
		instrument: instrument,
		bids:       btree.NewG(degree, levelLess),
		asks:       btree.NewG(degree, levelLess),
		resting:    make(map[uint64]struct{}),
	}
}

// Instrument returns the instrument this book trades.
func (b *OrderBook) Instrument() domain.Instrument {
	return b.instrument
}

// PlaceOrder submits an order to the book and returns any resulting
// trades, in the order they were generated (price-then-time priority of
// the maker orders consumed).
//
// The order first matches against the opposite side; any remaining
// quantity rests on the book at its limit price. Validation happens
// before any mutation, so a rejected call leaves the book unchanged.
//
// Returns domain.ErrDuplicateID if id is already resting in the book and
// domain.ErrZeroQuantity if quantity is zero.
func (b *OrderBook) PlaceOrder(side domain.Side, price, quantity, id uint64) ([]domain.Trade, error) {
	if _, ok := b.resting[id]; ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrDuplicateID)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrZeroQuantity)
	}

	incoming := &domain.Order{
		ID:       id,
		Side:     side,
		Price:    price,
		Quantity: quantity,
		Sequence: b.nextSequence,
	}
	b.nextSequence++

	trades := b.matchIncoming(incoming)

	if incoming.Quantity > 0 {
		b.rest(incoming)
		b.resting[id] = struct{}{}
	}

	return trades, nil
}

// BestBuy returns the cached highest bid price and the total quantity at
// that level. The second return is false when no bids rest on the book.
func (b *OrderBook) BestBuy() (PriceQuantity, bool) {
	return b.bestBid, b.hasBestBid
}

// BestSell returns the cached lowest ask price and the total quantity at
// that level. The second return is false when no asks rest on the book.
func (b *OrderBook) BestSell() (PriceQuantity, bool) {
	return b.bestAsk, b.hasBestAsk
}

// Depth returns up to levels aggregated price levels for the given side:
// bids in descending price order, asks in ascending price order. This is
// a live traversal of the side index, not a cache read.
func (b *OrderBook) Depth(side domain.Side, levels int) []PriceQuantity {
	if levels <= 0 {
		return nil
	}
	out := make([]PriceQuantity, 0, levels)
	collect := func(l *PriceLevel) bool {
		out = append(out, PriceQuantity{Price: l.Price, Quantity: l.TotalQuantity})
		return len(out) < levels
	}
	if side == domain.SideBuy {
		b.bids.Descend(collect)
	} else {
		b.asks.Ascend(collect)
	}
	return out
}

// IsEmpty returns true if no orders rest on either side.
func (b *OrderBook) IsEmpty() bool {
	return b.bids.Len() == 0 && b.asks.Len() == 0
}

// matchIncoming walks the opposite side best-first, consuming one whole
// price level at a time, until the incoming order is filled or the spread
// no longer crosses. Levels are never interleaved.
func (b *OrderBook) matchIncoming(incoming *domain.Order) []domain.Trade {
	var trades []domain.Trade

	for incoming.Quantity > 0 {
		var level *PriceLevel
		if incoming.Side == domain.SideBuy {
			best, ok := b.asks.Min()
			if !ok || best.Price > incoming.Price {
				break
			}
			level = best
		} else {
			best, ok := b.bids.Max()
			if !ok || best.Price < incoming.Price {
				break
			}
			level = best
		}

		switch b.matchPriceLevel(incoming, level, &trades) {
		case levelEmptiedBest:
			b.removeLevel(incoming.Side.Opposite(), level)
			b.refreshBest(incoming.Side.Opposite())
		case levelEmptied:
			b.removeLevel(incoming.Side.Opposite(), level)
		case levelMatchedBest:
			b.refreshBest(incoming.Side.Opposite())
		case levelMatched:
			// No cache update needed.
		}
	}

	return trades
}

// matchPriceLevel matches the incoming order against one level on the
// opposite side and reports what cache maintenance the caller owes.
func (b *OrderBook) matchPriceLevel(incoming *domain.Order, level *PriceLevel, trades *[]domain.Trade) levelOutcome {
	// Capture whether this level is the side's best before mutating it.
	var wasBest bool
	if incoming.Side == domain.SideBuy {
		if best, ok := b.asks.Min(); ok {
			wasBest = best.Price == level.Price
		}
	} else {
		if best, ok := b.bids.Max(); ok {
			wasBest = best.Price == level.Price
		}
	}

	b.matchAgainstLevel(incoming, level, trades)

	switch {
	case level.IsEmpty() && wasBest:
		return levelEmptiedBest
	case level.IsEmpty():
		return levelEmptied
	case wasBest:
		return levelMatchedBest
	default:
		return levelMatched
	}
}

// matchAgainstLevel fills the incoming order from the front of the
// level's queue until the order is filled or the level is exhausted.
// Every trade executes at the level's price — the maker's price.
func (b *OrderBook) matchAgainstLevel(incoming *domain.Order, level *PriceLevel, trades *[]domain.Trade) {
	for incoming.Quantity > 0 && !level.IsEmpty() {
		resting := level.Front()
		matched := min(incoming.Quantity, resting.Quantity)

		*trades = append(*trades, domain.Trade{
			Price:    level.Price,
			Quantity: matched,
			MakerID:  resting.ID,
			TakerID:  incoming.ID,
		})
		incoming.Quantity -= matched

		if matched == resting.Quantity {
			removed := level.RemoveFront()
			delete(b.resting, removed.ID)
		} else {
			// Partial fill: the maker keeps its queue position.
			level.ShrinkFront(resting.Quantity - matched)
		}
	}
}

// rest inserts the order's remainder into its own side's index, creating
// the price level if needed, and refreshes that side's cache.
func (b *OrderBook) rest(order *domain.Order) {
	tree := b.bids
	if order.Side == domain.SideSell {
		tree = b.asks
	}

	level, ok := tree.Get(&PriceLevel{Price: order.Price})
	if !ok {
		level = NewPriceLevel(order.Price)
		tree.ReplaceOrInsert(level)
	}
	level.Add(order)

	b.refreshBest(order.Side)
}

func (b *OrderBook) removeLevel(side domain.Side, level *PriceLevel) {
	if side == domain.SideBuy {
		b.bids.Delete(level)
	} else {
		b.asks.Delete(level)
	}
}

// refreshBest recomputes one side's cached top of book from the side
// index's extreme key. Called at every mutation point that could change
// the top; the cache is pure denormalization, never a source of truth.
func (b *OrderBook) refreshBest(side domain.Side) {
	if side == domain.SideBuy {
		if level, ok := b.bids.Max(); ok {
			b.bestBid = PriceQuantity{Price: level.Price, Quantity: level.TotalQuantity}
			b.hasBestBid = true
		} else {
			b.bestBid = PriceQuantity{}
			b.hasBestBid = false
		}
		return
	}
	if level, ok := b.asks.Min(); ok {
		b.bestAsk = PriceQuantity{Price: level.Price, Quantity: level.TotalQuantity}
		b.hasBestAsk = true
	} else {
		b.bestAsk = PriceQuantity{}
		b.hasBestAsk = false
	}
}
