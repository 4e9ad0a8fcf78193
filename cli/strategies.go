package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"futuresBot/exchange"
	"futuresBot/strategy"
	"futuresBot/validate"
)

type ocoFlags struct {
	interval        string
	timeout         string
	cancelOnTimeout bool
}

func defaultOCOFlags() ocoFlags {
	return ocoFlags{interval: "2", timeout: "3600"}
}

type stopLimitFlags struct {
	qty      string
	interval string
	timeout  string
	stream   bool
}

func defaultStopLimitFlags() stopLimitFlags {
	return stopLimitFlags{qty: "0.002", interval: "2", timeout: "0"}
}

func (a *App) strategyOpts() []strategy.Option {
	return []strategy.Option{strategy.WithClock(a.clock), strategy.WithLogger(a.log)}
}

func seconds(s string) (time.Duration, error) {
	v, err := validate.Seconds(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(v * float64(time.Second)), nil
}

func (a *App) ocoCmd() *cobra.Command {
	f := defaultOCOFlags()
	cmd := a.command("oco SYMBOL ENTRY_SIDE QTY TP_PRICE STOP_PRICE STOP_LIMIT_PRICE",
		"Place a take-profit and a stop on the exit side, cancel the other when one fills", "OCO failed.", 6,
		func(ctx context.Context, args []string) error { return a.oco(ctx, args, f) })
	cmd.Flags().StringVar(&f.interval, "interval", f.interval, "poll interval in seconds")
	cmd.Flags().StringVar(&f.timeout, "timeout", f.timeout, "give up after this many seconds")
	cmd.Flags().BoolVar(&f.cancelOnTimeout, "cancel-on-timeout", false, "cancel both legs when giving up")
	return cmd
}

func (a *App) oco(ctx context.Context, args []string, f ocoFlags) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	side, err := validate.Side(args[1])
	if err != nil {
		return err
	}
	qty, err := validate.Quantity(args[2])
	if err != nil {
		return err
	}
	tp, err := validate.Price(args[3])
	if err != nil {
		return err
	}
	stop, err := validate.Price(args[4])
	if err != nil {
		return err
	}
	stopLimit, err := validate.Price(args[5])
	if err != nil {
		return err
	}
	cfg := strategy.DefaultOCOConfig()
	if cfg.PollInterval, err = seconds(f.interval); err != nil {
		return err
	}
	if cfg.Timeout, err = seconds(f.timeout); err != nil {
		return err
	}
	cfg.CancelOnTimeout = f.cancelOnTimeout

	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	res, err := strategy.NewOCO(ex, cfg, a.strategyOpts()...).Run(ctx, strategy.OCOParams{
		Symbol:          symbol,
		Side:            side,
		Quantity:        qty,
		TakeProfitPrice: tp,
		StopPrice:       stop,
		StopLimitPrice:  stopLimit,
	})
	if err != nil {
		return err
	}

	a.println("OCO result.")
	a.printf("TP price: %s, TP order id: %d\n", exchange.FormatNumber(tp), res.TakeProfit.OrderID)
	a.printf("Stop trigger: %s, Stop-limit price: %s, Stop order id: %d\n",
		exchange.FormatNumber(stop), exchange.FormatNumber(stopLimit), res.Stop.OrderID)
	a.printf("Result: %s\n", res.Tag())
	a.printf("Outcome: %s\n", res.Outcome)
	if res.Filled != nil {
		a.printf("Filled Order ID: %d\n", res.Filled.OrderID)
	}
	return nil
}

func (a *App) stopLimitCmd() *cobra.Command {
	f := defaultStopLimitFlags()
	cmd := a.command("stop-limit SYMBOL SIDE TRIGGER_PRICE LIMIT_PRICE",
		"Watch the price and place a limit order once it crosses the trigger", "Stop-limit failed.", 4,
		func(ctx context.Context, args []string) error { return a.stopLimit(ctx, args, f) })
	cmd.Flags().StringVar(&f.qty, "qty", f.qty, "order quantity")
	cmd.Flags().StringVar(&f.interval, "interval", f.interval, "poll interval in seconds")
	cmd.Flags().StringVar(&f.timeout, "timeout", f.timeout, "give up after this many seconds, 0 waits forever")
	cmd.Flags().BoolVar(&f.stream, "stream", false, "read prices from the websocket mini-ticker instead of REST")
	return cmd
}

func (a *App) stopLimit(ctx context.Context, args []string, f stopLimitFlags) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	side, err := validate.Side(args[1])
	if err != nil {
		return err
	}
	trigger, err := validate.Price(args[2])
	if err != nil {
		return err
	}
	limit, err := validate.Price(args[3])
	if err != nil {
		return err
	}
	qty, err := validate.Quantity(f.qty)
	if err != nil {
		return err
	}
	cfg := strategy.DefaultStopLimitConfig()
	if cfg.PollInterval, err = seconds(f.interval); err != nil {
		return err
	}
	if cfg.Timeout, err = seconds(f.timeout); err != nil {
		return err
	}

	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	var prices strategy.PriceSource
	if f.stream {
		streamCtx, stop := context.WithCancel(ctx)
		defer stop()
		ps := exchange.NewPriceStream(a.cfg.Exchange.WSURL, symbol, a.log)
		go func() { _ = ps.Run(streamCtx) }()
		prices = ps
	}

	a.println("Watching price...")
	res, err := strategy.NewStopLimit(ex, prices, cfg, a.strategyOpts()...).Run(ctx, strategy.StopLimitParams{
		Symbol:       symbol,
		Side:         side,
		Quantity:     qty,
		TriggerPrice: trigger,
		LimitPrice:   limit,
	})
	if err != nil {
		return err
	}

	a.println("Stop-limit result.")
	a.printf("Outcome: %s\n", res.Outcome)
	a.printf("Last price: %s\n", exchange.FormatNumber(res.LastPrice))
	if res.Order != nil {
		a.printf("Type: %s\n", res.Order.Type)
		a.printf("Price: %s\n", exchange.FormatNumber(limit))
		a.printf("Order ID: %d\n", res.Order.OrderID)
	}
	return nil
}

func (a *App) twapCmd() *cobra.Command {
	return a.command("twap SYMBOL SIDE TOTAL_QTY SLICES DURATION_SEC",
		"Split a market order into equal slices over a duration", "TWAP failed.", 5, a.twap)
}

func (a *App) twap(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	side, err := validate.Side(args[1])
	if err != nil {
		return err
	}
	total, err := validate.Quantity(args[2])
	if err != nil {
		return err
	}
	slices, err := validate.SliceCount(args[3])
	if err != nil {
		return err
	}
	duration, err := seconds(args[4])
	if err != nil {
		return err
	}

	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	res, err := strategy.NewTWAP(ex, a.strategyOpts()...).Run(ctx, strategy.TWAPParams{
		Symbol:        symbol,
		Side:          side,
		TotalQuantity: total,
		Slices:        slices,
		Duration:      duration,
	})
	if err != nil {
		return err
	}

	a.println("TWAP summary.")
	a.printf("Symbol: %s\n", symbol)
	a.printf("Side: %s\n", side)
	a.printf("Total Qty: %s\n", exchange.FormatNumber(total))
	a.printf("Slices: %d\n", slices)
	a.printf("Executed slices: %d/%d\n", res.Succeeded(), len(res.Slices))
	for _, s := range res.Slices {
		if s.Err != nil {
			a.printf("Slice %d: failed: %v\n", s.Index+1, s.Err)
			continue
		}
		a.printf("Slice %d: Order ID: %d, Qty: %s, Status: %s\n", s.Index+1, s.Order.OrderID, exchange.FormatNumber(s.Quantity), s.Order.Status)
	}
	a.printf("Outcome: %s\n", res.Outcome)
	return nil
}

func (a *App) gridCmd() *cobra.Command {
	return a.command("grid SYMBOL LOWER UPPER LEVELS QTY_PER_ORDER",
		"Place buy and sell limits on an evenly spaced price ladder", "Grid failed.", 5, a.grid)
}

func (a *App) grid(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	lower, err := validate.Price(args[1])
	if err != nil {
		return err
	}
	upper, err := validate.Price(args[2])
	if err != nil {
		return err
	}
	levels, err := validate.LevelCount(args[3])
	if err != nil {
		return err
	}
	qty, err := validate.Quantity(args[4])
	if err != nil {
		return err
	}
	// reject a bad range before building the client
	if _, err := strategy.GridPrices(lower, upper, levels); err != nil {
		return err
	}

	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	res, err := strategy.NewGrid(ex, a.strategyOpts()...).Run(ctx, strategy.GridParams{
		Symbol:           symbol,
		Lower:            lower,
		Upper:            upper,
		Levels:           levels,
		QuantityPerOrder: qty,
	})
	if err != nil {
		return err
	}

	a.println("Grid placement summary.")
	a.printf("Symbol: %s\n", symbol)
	a.printf("Levels: %d\n", levels)
	a.println("Placed orders:")
	for _, l := range res.Placed {
		a.printf("Price: %s, Buy ID: %d, Sell ID: %d\n", exchange.FormatNumber(l.Price), l.BuyOrderID, l.SellOrderID)
	}
	if len(res.Failed) > 0 {
		a.println("Failed levels:")
		for _, fl := range res.Failed {
			if fl.BuyOrderID != 0 {
				a.printf("Price: %s, Buy ID: %d left live, failed: %v\n", exchange.FormatNumber(fl.Price), fl.BuyOrderID, fl.Err)
				continue
			}
			a.printf("Price: %s, failed: %v\n", exchange.FormatNumber(fl.Price), fl.Err)
		}
	}
	return nil
}
