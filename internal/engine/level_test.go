package engine

import (
	"testing"

	"github.com/efreitasn/limitbook/internal/domain"
)

func levelOrder(id, qty uint64) *domain.Order {
	// Side, price and sequence don't affect level bookkeeping.
	return &domain.Order{ID: id, Side: domain.SideBuy, Price: 10000, Quantity: qty}
}

func TestPriceLevel_AddFIFOAndTotals(t *testing.T) {
	l := NewPriceLevel(10000)
	if !l.IsEmpty() || l.TotalQuantity != 0 {
		t.Fatal("new level should be empty with zero total")
	}

	l.Add(levelOrder(1, 30))
	l.Add(levelOrder(2, 20))

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if l.Front().ID != 1 {
		t.Errorf("front = %d, want oldest order first", l.Front().ID)
	}
	if l.TotalQuantity != 50 {
		t.Errorf("TotalQuantity = %d, want 50", l.TotalQuantity)
	}
}

func TestPriceLevel_RemoveFrontAndShrinkFront(t *testing.T) {
	l := NewPriceLevel(9900)
	l.Add(levelOrder(1, 10))
	l.Add(levelOrder(2, 25))

	// Partial fill of the front order: 10 -> 4.
	l.ShrinkFront(4)
	if l.Front().Quantity != 4 {
		t.Errorf("front quantity = %d, want 4", l.Front().Quantity)
	}
	if l.TotalQuantity != 29 {
		t.Errorf("TotalQuantity = %d, want 29", l.TotalQuantity)
	}
	// The shrunk order keeps its queue position.
	if l.Front().ID != 1 {
		t.Errorf("front = %d, want 1", l.Front().ID)
	}

	removed := l.RemoveFront()
	if removed == nil || removed.ID != 1 || removed.Quantity != 4 {
		t.Fatalf("removed = %+v", removed)
	}
	if l.TotalQuantity != 25 || l.Front().ID != 2 {
		t.Errorf("after removal: total = %d front = %d", l.TotalQuantity, l.Front().ID)
	}

	l.RemoveFront()
	if !l.IsEmpty() || l.TotalQuantity != 0 {
		t.Error("level should be empty with zero total")
	}
}

func TestPriceLevel_EmptyBehavior(t *testing.T) {
	l := NewPriceLevel(10000)
	if l.Front() != nil {
		t.Error("Front on empty level should be nil")
	}
	if l.RemoveFront() != nil {
		t.Error("RemoveFront on empty level should be nil")
	}
	l.ShrinkFront(5) // no-op, must not panic
	if l.TotalQuantity != 0 {
		t.Errorf("TotalQuantity = %d, want 0", l.TotalQuantity)
	}
}
