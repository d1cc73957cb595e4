package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/limitbook/internal/domain"
	"github.com/efreitasn/limitbook/internal/engine"
	"github.com/efreitasn/limitbook/internal/store"
)

// PlaceOrderRequest represents the input for order placement, with price
// and quantity still in human-readable decimal form.
type PlaceOrderRequest struct {
	Side     string
	Price    string
	Quantity string
	ID       uint64
}

// DepthLevel is one aggregated price level in decimal form.
type DepthLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// MarketService is the decimal-facing facade over the order book. It
// converts amounts to minor units at the boundary, records executions on
// the tape, and logs placements and fills. The engine itself only ever
// sees integers.
//
// MarketService inherits the engine's single-writer model: calls must be
// serialized by the owner.
type MarketService struct {
	book       *engine.OrderBook
	executions *store.ExecutionStore
	logger     *slog.Logger
}

// NewMarketService creates a MarketService trading the given instrument.
func NewMarketService(instrument domain.Instrument, executions *store.ExecutionStore, logger *slog.Logger) *MarketService {
	return &MarketService{
		book:       engine.NewOrderBook(instrument),
		executions: executions,
		logger:     logger,
	}
}

// Instrument returns the instrument this market trades.
func (s *MarketService) Instrument() domain.Instrument {
	return s.book.Instrument()
}

// PlaceOrder validates and converts the request, submits it to the book,
// and records any resulting trades on the execution tape.
func (s *MarketService) PlaceOrder(req PlaceOrderRequest) ([]*domain.Execution, error) {
	side, err := domain.ParseSide(req.Side)
	if err != nil {
		return nil, err
	}
	priceDec, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, &domain.ValidationError{Message: "price must be a decimal number"}
	}
	quantityDec, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return nil, &domain.ValidationError{Message: "quantity must be a decimal number"}
	}

	instrument := s.book.Instrument()
	price, err := domain.PriceToMinorUnits(priceDec, instrument.Quote)
	if err != nil {
		return nil, err
	}
	quantity, err := domain.QuantityToMinorUnits(quantityDec, instrument.Base)
	if err != nil {
		return nil, err
	}

	trades, err := s.book.PlaceOrder(side, price, quantity, req.ID)
	if err != nil {
		s.logger.Warn("order rejected",
			slog.Uint64("order_id", req.ID),
			slog.String("side", string(side)),
			slog.String("error", err.Error()))
		return nil, err
	}

	executedAt := time.Now()
	executions := make([]*domain.Execution, 0, len(trades))
	for _, t := range trades {
		e := &domain.Execution{
			ExecutionID: uuid.New().String(),
			Trade:       t,
			ExecutedAt:  executedAt,
		}
		s.executions.Append(e)
		executions = append(executions, e)
	}

	s.logger.Info("order placed",
		slog.Uint64("order_id", req.ID),
		slog.String("side", string(side)),
		slog.Uint64("price", price),
		slog.Uint64("quantity", quantity),
		slog.Int("trades", len(executions)))

	return executions, nil
}

// BestBuy returns the top of the buy side in decimal form.
func (s *MarketService) BestBuy() (DepthLevel, bool) {
	return s.decimalLevel(s.book.BestBuy())
}

// BestSell returns the top of the sell side in decimal form.
func (s *MarketService) BestSell() (DepthLevel, bool) {
	return s.decimalLevel(s.book.BestSell())
}

// Depth returns up to levels aggregated price levels in decimal form,
// bids descending or asks ascending.
func (s *MarketService) Depth(side domain.Side, levels int) []DepthLevel {
	raw := s.book.Depth(side, levels)
	out := make([]DepthLevel, 0, len(raw))
	for _, pq := range raw {
		dl, _ := s.decimalLevel(pq, true)
		out = append(out, dl)
	}
	return out
}

// IsEmpty returns true if no orders rest on either side of the book.
func (s *MarketService) IsEmpty() bool {
	return s.book.IsEmpty()
}

// Executions returns the full execution tape, oldest first.
func (s *MarketService) Executions() []*domain.Execution {
	return s.executions.All()
}

// Reset discards the book and starts over with an empty one for the same
// instrument. The execution tape is kept.
func (s *MarketService) Reset() {
	instrument := s.book.Instrument()
	s.book = engine.NewOrderBook(instrument)
	s.logger.Info("book cleared", slog.String("instrument", instrument.String()))
}

func (s *MarketService) decimalLevel(pq engine.PriceQuantity, ok bool) (DepthLevel, bool) {
	if !ok {
		return DepthLevel{}, false
	}
	instrument := s.book.Instrument()
	return DepthLevel{
		Price:    domain.PriceFromMinorUnits(pq.Price, instrument.Quote),
		Quantity: domain.QuantityFromMinorUnits(pq.Quantity, instrument.Base),
	}, true
}
