package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/efreitasn/limitbook/internal/config"
	"github.com/efreitasn/limitbook/internal/domain"
	"github.com/efreitasn/limitbook/internal/service"
	"github.com/efreitasn/limitbook/internal/store"
)

func main() {
	instrumentName := flag.String("instrument", "", "Instrument name from the catalogue (overrides asset flags)")
	baseSymbol := flag.String("base", "BTC", "Base asset symbol")
	baseDecimals := flag.Uint("base-decimals", 6, "Base asset decimals")
	quoteSymbol := flag.String("quote", "USDT", "Quote asset symbol")
	quoteDecimals := flag.Uint("quote-decimals", 2, "Quote asset decimals")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	var instrument domain.Instrument
	if *instrumentName != "" {
		instrument, err = cfg.Instrument(*instrumentName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	} else {
		instrument = domain.NewInstrument(
			domain.Asset{Symbol: *baseSymbol, Decimals: uint8(*baseDecimals)},
			domain.Asset{Symbol: *quoteSymbol, Decimals: uint8(*quoteDecimals)},
		)
	}

	market := service.NewMarketService(instrument, store.NewExecutionStore(), logger)
	cli := &cli{market: market, depthLevels: cfg.DepthLevels, nextID: 1}

	args := flag.Args()
	if len(args) == 0 {
		cli.runInteractive()
		return
	}

	// One-shot mode: a single command against a fresh book.
	if err := cli.run(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type cli struct {
	market      *service.MarketService
	depthLevels int
	nextID      uint64
}

func (c *cli) runInteractive() {
	fmt.Printf("=== Order Book CLI — %s ===\n", c.market.Instrument())
	fmt.Println("Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit", "q":
			return
		default:
			if err := c.run(args); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}

func (c *cli) run(args []string) error {
	switch args[0] {
	case "place-order":
		if len(args) != 5 {
			return fmt.Errorf("usage: place-order <buy|sell> <price> <quantity> <id>")
		}
		id, err := strconv.ParseUint(args[4], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[4])
		}
		return c.placeOrder(args[1], args[2], args[3], id)
	case "buy", "sell":
		if len(args) != 3 && len(args) != 4 {
			return fmt.Errorf("usage: %s <price> <quantity> [id]", args[0])
		}
		id := c.nextID
		if len(args) == 4 {
			var err error
			id, err = strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[3])
			}
		}
		if id >= c.nextID {
			c.nextID = id + 1
		}
		return c.placeOrder(args[0], args[1], args[2], id)
	case "book", "state", "b":
		c.printBook()
	case "best":
		c.printBest(domain.SideBuy)
		c.printBest(domain.SideSell)
	case "best-buy":
		c.printBest(domain.SideBuy)
	case "best-sell":
		c.printBest(domain.SideSell)
	case "depth":
		levels := c.depthLevels
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid level count %q", args[1])
			}
			levels = n
		}
		c.printDepth(levels)
	case "clear":
		c.market.Reset()
		fmt.Println("Order book cleared.")
	case "help":
		printHelp()
	default:
		return fmt.Errorf("unknown command %q, type 'help' for a list", args[0])
	}
	return nil
}

func (c *cli) placeOrder(side, price, quantity string, id uint64) error {
	executions, err := c.market.PlaceOrder(service.PlaceOrderRequest{
		Side:     side,
		Price:    price,
		Quantity: quantity,
		ID:       id,
	})
	if err != nil {
		return err
	}
	if len(executions) == 0 {
		fmt.Printf("Order %d placed. No trades executed.\n", id)
		return nil
	}
	fmt.Printf("Order %d executed! Trades:\n", id)
	instrument := c.market.Instrument()
	for _, e := range executions {
		fmt.Printf("  %s @ %s (maker: %d, taker: %d)\n",
			domain.FormatQuantity(e.Trade.Quantity, instrument.Base),
			domain.FormatPrice(e.Trade.Price, instrument.Quote),
			e.Trade.MakerID, e.Trade.TakerID)
	}
	return nil
}

func (c *cli) printBest(side domain.Side) {
	label := "buy"
	level, ok := c.market.BestBuy()
	if side == domain.SideSell {
		label = "sell"
		level, ok = c.market.BestSell()
	}
	if !ok {
		fmt.Printf("No %s orders\n", label)
		return
	}
	instrument := c.market.Instrument()
	fmt.Printf("Best %s: %s %s @ %s %s\n", label,
		level.Quantity, instrument.Base.Symbol,
		level.Price, instrument.Quote.Symbol)
}

func (c *cli) printBook() {
	if c.market.IsEmpty() {
		fmt.Println("Order book is empty.")
		return
	}
	instrument := c.market.Instrument()
	asks := c.market.Depth(domain.SideSell, c.depthLevels)
	bids := c.market.Depth(domain.SideBuy, c.depthLevels)

	fmt.Printf("--- %s ---\n", instrument)
	// Asks print highest-first so the ladder reads top to bottom.
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Printf("  ASK %s %s x %s %s\n",
			asks[i].Price, instrument.Quote.Symbol,
			asks[i].Quantity, instrument.Base.Symbol)
	}
	for _, l := range bids {
		fmt.Printf("  BID %s %s x %s %s\n",
			l.Price, instrument.Quote.Symbol,
			l.Quantity, instrument.Base.Symbol)
	}
}

func (c *cli) printDepth(levels int) {
	instrument := c.market.Instrument()
	for _, side := range []domain.Side{domain.SideSell, domain.SideBuy} {
		fmt.Printf("%s depth:\n", strings.ToUpper(string(side)))
		rows := c.market.Depth(side, levels)
		if len(rows) == 0 {
			fmt.Println("  (empty)")
			continue
		}
		for _, l := range rows {
			fmt.Printf("  %s %s x %s %s\n",
				l.Price, instrument.Quote.Symbol,
				l.Quantity, instrument.Base.Symbol)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  buy <price> <quantity> [id]    Place a buy order (id auto-assigned if omitted)
  sell <price> <quantity> [id]   Place a sell order
  place-order <side> <price> <quantity> <id>
  book                           Show the order book ladder
  best                           Show best bid and ask
  best-buy | best-sell           Show one side's top of book
  depth [n]                      Show up to n price levels per side
  clear                          Discard all resting orders
  quit                           Exit`)
}
