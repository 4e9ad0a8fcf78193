// futuresBot/main.go
// Command-line order tool for Binance USDT-M futures.
// - Signed REST client with server clock sync
// - Market/limit orders, position close, account and market queries
// - Client-side OCO, stop-limit trigger, TWAP and grid strategies
// Credentials come from BINANCE_API_KEY / BINANCE_API_SECRET (env or .env).

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"futuresBot/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Stdio().Execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
