package strategy

import (
	"context"
	"fmt"
	"math"

	"futuresBot/exchange"
)

type CloseResult struct {
	Symbol      string
	NoPosition  bool
	Side        string
	Quantity    float64
	Order       *exchange.OrderResponse
	FinalAmount float64
}

// Closed is true once the re-checked position is flat.
func (r *CloseResult) Closed() bool {
	return !r.NoPosition && r.FinalAmount == 0
}

// ClosePosition flattens the open position on symbol with a reduce-only market order
// and re-reads the position afterwards.
func ClosePosition(ctx context.Context, ex exchange.ExchangeClient, symbol string, opts ...Option) (*CloseResult, error) {
	b := newBase(opts)
	res := &CloseResult{Symbol: symbol}

	amt, err := positionAmount(ctx, ex, symbol)
	if err != nil {
		return nil, fmt.Errorf("read position: %w", err)
	}
	if amt == 0 {
		res.NoPosition = true
		b.log.Infow("close_no_position", "symbol", symbol)
		return res, nil
	}

	res.Side = exchange.SideSell
	if amt < 0 {
		res.Side = exchange.SideBuy
	}
	res.Quantity = math.Abs(amt)

	b.log.Infow("close_position", "symbol", symbol, "side", res.Side, "qty", res.Quantity)
	req := exchange.MarketOrder(symbol, res.Side, res.Quantity)
	req.ReduceOnly = true
	order, err := ex.PlaceOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place reduce-only order: %w", err)
	}
	res.Order = order

	final, err := positionAmount(ctx, ex, symbol)
	if err != nil {
		b.log.Warnw("close_recheck_failed", "symbol", symbol, "err", err)
		final = amt
	}
	res.FinalAmount = final
	b.log.Infow("close_position_done", "symbol", symbol, "final_amt", final)
	return res, nil
}

// positionAmount returns the first non-zero position amount, or 0.
func positionAmount(ctx context.Context, ex exchange.ExchangeClient, symbol string) (float64, error) {
	positions, err := ex.PositionRisk(ctx, symbol)
	if err != nil {
		return 0, err
	}
	for _, p := range positions {
		if p.Symbol == symbol && p.Amount() != 0 {
			return p.Amount(), nil
		}
	}
	return 0, nil
}
