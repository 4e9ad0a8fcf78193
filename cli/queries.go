package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"futuresBot/validate"
)

func (a *App) priceCmd() *cobra.Command {
	return a.command("price SYMBOL", "Show the latest price", "Price fetch failed.", 1, a.price)
}

func (a *App) price(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	p, err := ex.GetSymbolPrice(ctx, symbol)
	if err != nil {
		return err
	}
	a.log.Infow("price_fetched", "symbol", symbol, "price", p.Price)

	a.println("Price summary.")
	a.printf("Symbol: %s, Price: %s\n", symbol, p.Price)
	return nil
}

func (a *App) statsCmd() *cobra.Command {
	return a.command("stats SYMBOL", "Show 24h ticker statistics", "Stats fetch failed.", 1, a.stats)
}

func (a *App) stats(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	t, err := ex.Ticker24h(ctx, symbol)
	if err != nil {
		return err
	}
	a.log.Infow("stats_fetched", "symbol", symbol, "last_price", t.LastPrice)

	a.println("24h stats summary.")
	a.printf("Symbol: %s\n", t.Symbol)
	a.printf("Last: %s, Open: %s, High: %s, Low: %s\n", t.LastPrice, t.OpenPrice, t.HighPrice, t.LowPrice)
	a.printf("Change: %s (%s%%)\n", t.PriceChange, t.PriceChangePercent)
	a.printf("Volume: %s, Quote Volume: %s, Trades: %d\n", t.Volume, t.QuoteVolume, t.Count)
	return nil
}

func (a *App) infoCmd() *cobra.Command {
	return a.command("info SYMBOL", "Show exchange metadata for a symbol", "Exchange info failed.", 1, a.info)
}

func (a *App) info(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	info, err := ex.ExchangeInfo(ctx)
	if err != nil {
		return err
	}
	s, ok := info.Symbol(symbol)
	if !ok {
		a.log.Warnw("symbol_info_not_found", "symbol", symbol)
		a.println("Symbol info not found.")
		return nil
	}
	a.log.Infow("exchange_info", "symbol", symbol, "status", s.Status, "filters", len(s.Filters))

	a.println("Exchange info summary.")
	a.printf("Symbol: %s\n", s.Symbol)
	a.printf("Status: %s, Base: %s, Quote: %s\n", s.Status, s.BaseAsset, s.QuoteAsset)
	a.printf("Price precision: %d, Qty precision: %d\n", s.PricePrecision, s.QuantityPrecision)
	for _, f := range s.Filters {
		a.printf("%v: %s\n", f["filterType"], filterString(f))
	}
	return nil
}

// filterString prints a filter's fields in key order, without filterType.
func filterString(f map[string]any) string {
	keys := make([]string, 0, len(f))
	for k := range f {
		if k != "filterType" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k]))
	}
	return strings.Join(parts, ", ")
}

func (a *App) positionsCmd() *cobra.Command {
	return a.command("positions", "List non-zero positions", "Positions fetch failed.", 0, a.positions)
}

func (a *App) positions(ctx context.Context, _ []string) error {
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	all, err := ex.PositionRisk(ctx, "")
	if err != nil {
		return err
	}

	a.println("Open positions summary.")
	n := 0
	for _, p := range all {
		if p.Amount() == 0 {
			continue
		}
		n++
		a.printf("Symbol: %s, Amt: %s, Entry: %s, UnPnL: %s\n", p.Symbol, p.PositionAmt, p.EntryPrice, p.UnRealizedProfit)
	}
	a.log.Infow("positions_fetched", "open", n, "total", len(all))
	if n == 0 {
		a.println("No open positions.")
	}
	return nil
}

func (a *App) balanceCmd() *cobra.Command {
	return a.command("balance", "Show the USDT futures wallet", "Balance fetch failed.", 0, a.balance)
}

func (a *App) balance(ctx context.Context, _ []string) error {
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	balances, err := ex.Balances(ctx)
	if err != nil {
		return err
	}
	a.log.Infow("balance_fetched", "assets", len(balances))

	a.println("Futures wallet summary.")
	for _, b := range balances {
		if b.Asset == "USDT" {
			a.printf("Asset: USDT, Balance: %s, Available: %s\n", b.Balance, b.AvailableBalance)
			return nil
		}
	}
	for _, b := range balances {
		a.printf("Asset: %s, Balance: %s, Available: %s\n", b.Asset, b.Balance, b.AvailableBalance)
	}
	return nil
}
