// Command lobdemo runs scripted scenarios against the order book,
// illustrating basic matching, partial fills, price-time priority, and
// aggressive orders sweeping multiple levels.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/limitbook/internal/domain"
	"github.com/efreitasn/limitbook/internal/engine"
)

func main() {
	fmt.Println("=== Limit Order Book Demo ===")

	btc := domain.Asset{Symbol: "BTC", Decimals: 6}
	usdt := domain.Asset{Symbol: "USDT", Decimals: 2}
	instrument := domain.NewInstrument(btc, usdt)
	fmt.Printf("Instrument: %s\n\n", instrument)

	demoBasicMatching(engine.NewOrderBook(instrument))
	demoPartialFills(engine.NewOrderBook(instrument))
	demoPriceTimePriority(engine.NewOrderBook(instrument))
	demoMultiLevelSweep(engine.NewOrderBook(instrument))
}

// demoBasicMatching shows a buy and a sell at the same price matching
// exactly, leaving the book empty.
func demoBasicMatching(book *engine.OrderBook) {
	fmt.Println("1. Basic matching")
	fmt.Println("-----------------")

	printTrades(mustPlace(book, domain.SideBuy, "100.00", "0.010", 1), book)
	printBookState(book)

	printTrades(mustPlace(book, domain.SideSell, "100.00", "0.010", 2), book)
	printBookState(book)
}

// demoPartialFills shows a resting order consumed by two smaller
// incoming orders.
func demoPartialFills(book *engine.OrderBook) {
	fmt.Println("2. Partial fills")
	fmt.Println("----------------")

	mustPlace(book, domain.SideBuy, "100.00", "0.015", 1)

	printTrades(mustPlace(book, domain.SideSell, "100.00", "0.010", 2), book)
	printBookState(book)

	printTrades(mustPlace(book, domain.SideSell, "100.00", "0.010", 3), book)
	printBookState(book)
}

// demoPriceTimePriority shows matching ordered first by best price, then
// by arrival within a level.
func demoPriceTimePriority(book *engine.OrderBook) {
	fmt.Println("3. Price-time priority")
	fmt.Println("----------------------")

	mustPlace(book, domain.SideBuy, "99.00", "0.010", 1)
	mustPlace(book, domain.SideBuy, "100.00", "0.010", 2)
	mustPlace(book, domain.SideBuy, "100.00", "0.010", 3)
	printBookState(book)

	printTrades(mustPlace(book, domain.SideSell, "99.00", "0.025", 4), book)
	printBookState(book)
}

// demoMultiLevelSweep builds a two-sided book and sends an aggressive
// order through several ask levels.
func demoMultiLevelSweep(book *engine.OrderBook) {
	fmt.Println("4. Multi-level sweep")
	fmt.Println("--------------------")

	mustPlace(book, domain.SideBuy, "98.00", "0.020", 1)
	mustPlace(book, domain.SideBuy, "99.00", "0.015", 2)
	mustPlace(book, domain.SideBuy, "100.00", "0.010", 3)
	mustPlace(book, domain.SideSell, "101.00", "0.010", 4)
	mustPlace(book, domain.SideSell, "102.00", "0.015", 5)
	mustPlace(book, domain.SideSell, "103.00", "0.020", 6)
	printBookState(book)

	fmt.Println("Aggressive buy 0.030 @ 102.50:")
	printTrades(mustPlace(book, domain.SideBuy, "102.50", "0.030", 7), book)
	printBookState(book)
}

func mustPlace(book *engine.OrderBook, side domain.Side, price, quantity string, id uint64) []domain.Trade {
	instrument := book.Instrument()
	p, err := domain.PriceToMinorUnits(decimal.RequireFromString(price), instrument.Quote)
	if err != nil {
		fail(err)
	}
	q, err := domain.QuantityToMinorUnits(decimal.RequireFromString(quantity), instrument.Base)
	if err != nil {
		fail(err)
	}
	trades, err := book.PlaceOrder(side, p, q, id)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Placed %s %s @ %s (id=%d)\n", side,
		domain.FormatQuantity(q, instrument.Base),
		domain.FormatPrice(p, instrument.Quote), id)
	return trades
}

func printTrades(trades []domain.Trade, book *engine.OrderBook) {
	if len(trades) == 0 {
		fmt.Println("No trades executed.")
		return
	}
	instrument := book.Instrument()
	for _, t := range trades {
		fmt.Printf("Trade: %s @ %s (maker: %d, taker: %d)\n",
			domain.FormatQuantity(t.Quantity, instrument.Base),
			domain.FormatPrice(t.Price, instrument.Quote),
			t.MakerID, t.TakerID)
	}
}

func printBookState(book *engine.OrderBook) {
	instrument := book.Instrument()
	if book.IsEmpty() {
		fmt.Println("Book: empty")
		fmt.Println()
		return
	}
	fmt.Println("Book:")
	asks := book.Depth(domain.SideSell, 10)
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Printf("  ASK %s x %s\n",
			domain.FormatPrice(asks[i].Price, instrument.Quote),
			domain.FormatQuantity(asks[i].Quantity, instrument.Base))
	}
	for _, l := range book.Depth(domain.SideBuy, 10) {
		fmt.Printf("  BID %s x %s\n",
			domain.FormatPrice(l.Price, instrument.Quote),
			domain.FormatQuantity(l.Quantity, instrument.Base))
	}
	fmt.Println()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
	os.Exit(1)
}
