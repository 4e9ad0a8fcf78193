package cli

import (
	"context"

	"github.com/spf13/cobra"

	"futuresBot/exchange"
	"futuresBot/strategy"
	"futuresBot/validate"
)

func (a *App) marketCmd() *cobra.Command {
	return a.command("market SYMBOL SIDE QTY", "Place a market order", "Order failed.", 3, a.market)
}

func (a *App) market(ctx context.Context, args []string) error {
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

	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	req := exchange.MarketOrder(symbol, side, qty)
	req.ClientOrderID = exchange.NewClientOrderID("mkt")
	resp, err := ex.PlaceOrder(ctx, req)
	if err != nil {
		return err
	}
	a.log.Infow("market_order", "symbol", symbol, "raw", string(resp.Raw))

	if resp.Status == "FILLED" {
		a.println("Order executed.")
	} else {
		a.println("Market order placed.")
	}
	a.printf("Side: %s\n", side)
	a.printf("Qty: %s\n", exchange.FormatNumber(qty))
	a.printf("Status: %s\n", resp.Status)
	a.printf("Order ID: %d\n", resp.OrderID)
	a.printf("Executed Qty: %s\n", resp.ExecutedQty)
	return nil
}

func (a *App) limitCmd() *cobra.Command {
	return a.command("limit SYMBOL SIDE QTY PRICE", "Place a GTC limit order", "Limit order failed.", 4, a.limit)
}

func (a *App) limit(ctx context.Context, args []string) error {
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
	price, err := validate.Price(args[3])
	if err != nil {
		return err
	}

	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	req := exchange.LimitOrder(symbol, side, price, qty)
	req.ClientOrderID = exchange.NewClientOrderID("lmt")
	resp, err := ex.PlaceOrder(ctx, req)
	if err != nil {
		return err
	}
	a.log.Infow("limit_order", "symbol", symbol, "raw", string(resp.Raw))

	a.println("Limit order placed.")
	a.printf("Side: %s\n", side)
	a.printf("Qty: %s\n", exchange.FormatNumber(qty))
	a.printf("Price: %s\n", exchange.FormatNumber(price))
	a.printf("Status: %s\n", resp.Status)
	a.printf("Order ID: %d\n", resp.OrderID)
	return nil
}

func (a *App) closeCmd() *cobra.Command {
	return a.command("close SYMBOL", "Close the open position with a reduce-only market order", "Close position failed.", 1, a.closePosition)
}

func (a *App) closePosition(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	res, err := strategy.ClosePosition(ctx, ex, symbol, strategy.WithLogger(a.log))
	if err != nil {
		return err
	}
	if res.NoPosition {
		a.println("No open position.")
		return nil
	}

	result := "PARTIAL"
	if res.Closed() {
		result = "SUCCESS"
	}
	a.println("Position close result.")
	a.printf("Side: %s\n", res.Side)
	a.printf("Qty: %s\n", exchange.FormatNumber(res.Quantity))
	a.printf("Result: %s\n", result)
	a.printf("Final position size: %s\n", exchange.FormatNumber(res.FinalAmount))
	if res.Closed() {
		a.println("Note: Position successfully closed.")
	}
	return nil
}

func (a *App) orderCmd() *cobra.Command {
	return a.command("order SYMBOL ORDER_ID", "Show an order's status", "Order query failed.", 2, a.order)
}

func (a *App) order(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	id, err := validate.OrderID(args[1])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	o, err := ex.QueryOrder(ctx, symbol, id)
	if err != nil {
		return err
	}
	a.log.Infow("order_checked", "symbol", symbol, "order_id", id, "status", o.Status)

	a.println("Order status.")
	a.printf("Order ID: %d\n", o.OrderID)
	a.printf("Symbol: %s\n", o.Symbol)
	a.printf("Side: %s, Type: %s\n", o.Side, o.Type)
	a.printf("Price: %s, Stop: %s\n", o.Price, o.StopPrice)
	a.printf("Qty: %s, Executed Qty: %s, Avg Price: %s\n", o.OrigQty, o.ExecutedQty, o.AvgPrice)
	a.printf("Status: %s\n", o.Status)
	return nil
}

func (a *App) cancelCmd() *cobra.Command {
	return a.command("cancel SYMBOL ORDER_ID", "Cancel one order", "Cancel failed.", 2, a.cancel)
}

func (a *App) cancel(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	id, err := validate.OrderID(args[1])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	o, err := ex.CancelOrder(ctx, symbol, id)
	if err != nil {
		return err
	}
	a.log.Infow("order_cancelled", "symbol", symbol, "order_id", id, "status", o.Status)

	a.println("Cancel order result.")
	a.printf("Order ID: %d\n", id)
	a.printf("Status: %s\n", o.Status)
	return nil
}

func (a *App) cancelAllCmd() *cobra.Command {
	return a.command("cancel-all SYMBOL", "Cancel every open order on a symbol", "Cancel all failed.", 1, a.cancelAll)
}

func (a *App) cancelAll(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	res, err := ex.CancelAllOrders(ctx, symbol)
	if err != nil {
		return err
	}
	a.log.Infow("all_orders_cancelled", "symbol", symbol, "code", res.Code, "msg", res.Msg)

	a.println("Cancel all result.")
	a.printf("Symbol: %s\n", symbol)
	a.printf("Result: %s\n", res.Msg)
	return nil
}

func (a *App) openOrdersCmd() *cobra.Command {
	return a.command("open-orders SYMBOL", "List open orders on a symbol", "Fetch open orders failed.", 1, a.openOrders)
}

func (a *App) openOrders(ctx context.Context, args []string) error {
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		return err
	}
	ex, err := a.client(ctx)
	if err != nil {
		return err
	}
	orders, err := ex.OpenOrders(ctx, symbol)
	if err != nil {
		return err
	}
	a.log.Infow("open_orders", "symbol", symbol, "count", len(orders))

	a.println("Open orders summary.")
	if len(orders) == 0 {
		a.printf("No open orders for %s\n", symbol)
		return nil
	}
	for _, o := range orders {
		a.printf("Order ID: %d, Side: %s, Qty: %s, Price: %s, Status: %s\n", o.OrderID, o.Side, o.OrigQty, o.Price, o.Status)
	}
	return nil
}
