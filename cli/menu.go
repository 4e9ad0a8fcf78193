package cli

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

const menuText = `
========================================
        BINANCE FUTURES BOT MENU
========================================
1) Market Order
2) Limit Order
3) Close Position (Market)
4) View Price
5) Exchange Info
6) OCO (TP + SL)
7) Stop-Limit Trigger
8) TWAP Orders
9) Grid Strategy
10) Cancel Single Order
11) Cancel ALL Orders
12) View Positions
13) View Balance
14) View Open Orders
15) Order Status
16) 24h Stats
0) Exit
========================================`

// menuItem collects positional arguments by prompt and runs a handler in-process.
type menuItem struct {
	name    string
	failed  string
	prompts []string
	run     handler
}

func (a *App) menuItems() map[string]menuItem {
	return map[string]menuItem{
		"1":  {"market", "Order failed.", []string{"Symbol (example: BTCUSDT)", "Side (BUY/SELL)", "Quantity"}, a.market},
		"2":  {"limit", "Limit order failed.", []string{"Symbol", "Side (BUY/SELL)", "Quantity", "Limit Price"}, a.limit},
		"3":  {"close", "Close position failed.", []string{"Symbol"}, a.closePosition},
		"4":  {"price", "Price fetch failed.", []string{"Symbol"}, a.price},
		"5":  {"info", "Exchange info failed.", []string{"Symbol"}, a.info},
		"6":  {"oco", "OCO failed.", []string{"Symbol", "Entry Side (BUY/SELL)", "Quantity", "Take-Profit price", "Stop price", "Stop-limit price"}, a.menuOCO},
		"7":  {"stop-limit", "Stop-limit failed.", []string{"Symbol", "Side (BUY/SELL)", "Trigger Price", "Limit Price", "Quantity"}, a.menuStopLimit},
		"8":  {"twap", "TWAP failed.", []string{"Symbol", "Side (BUY/SELL)", "Total Quantity", "Number of slices", "Total duration (seconds)"}, a.twap},
		"9":  {"grid", "Grid failed.", []string{"Symbol", "Lower Range", "Upper Range", "Number of levels", "Quantity per level"}, a.grid},
		"10": {"cancel", "Cancel failed.", []string{"Symbol", "Order ID"}, a.cancel},
		"11": {"cancel-all", "Cancel all failed.", []string{"Symbol"}, a.cancelAll},
		"12": {"positions", "Positions fetch failed.", nil, a.positions},
		"13": {"balance", "Balance fetch failed.", nil, a.balance},
		"14": {"open-orders", "Fetch open orders failed.", []string{"Symbol"}, a.openOrders},
		"15": {"order", "Order query failed.", []string{"Symbol", "Order ID"}, a.order},
		"16": {"stats", "Stats fetch failed.", []string{"Symbol"}, a.stats},
	}
}

func (a *App) menuOCO(ctx context.Context, args []string) error {
	return a.oco(ctx, args, defaultOCOFlags())
}

// the menu asks for quantity as a fifth answer
func (a *App) menuStopLimit(ctx context.Context, args []string) error {
	f := defaultStopLimitFlags()
	f.qty = args[4]
	return a.stopLimit(ctx, args[:4], f)
}

func (a *App) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.menu(cmd.Context())
		},
	}
}

// menu loops until "0", end of input or ctx ends. A failed action is reported
// and the loop goes on.
func (a *App) menu(ctx context.Context) error {
	in := bufio.NewScanner(a.in)
	items := a.menuItems()

	ask := func(prompt string) (string, bool) {
		a.printf("%s: ", prompt)
		if !in.Scan() {
			return "", false
		}
		return strings.TrimSpace(in.Text()), true
	}

	for ctx.Err() == nil {
		a.println(menuText)
		choice, ok := ask("Enter your choice")
		if !ok {
			return in.Err()
		}
		if choice == "0" {
			a.println("Exiting...")
			return nil
		}
		item, found := items[choice]
		if !found {
			a.println("Invalid choice. Try again.")
			continue
		}

		args := make([]string, 0, len(item.prompts))
		for _, p := range item.prompts {
			v, ok := ask(p)
			if !ok {
				return in.Err()
			}
			args = append(args, v)
		}

		a.printf("\n>>> Running: %s %s\n\n", item.name, strings.Join(args, " "))
		a.log.Infow("menu_action", "command", item.name, "args", args)
		_ = a.run(ctx, item.name, item.failed, len(item.prompts), args, item.run)
		a.println("\n----------------------------------------")
		a.printf("Press Enter to continue...")
		if !in.Scan() {
			return in.Err()
		}
	}
	return nil
}
