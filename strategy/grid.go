package strategy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"futuresBot/exchange"
	"futuresBot/validate"
)

// GridPrices returns levels+1 evenly spaced prices from lower to upper inclusive,
// rounded to 8 decimals.
func GridPrices(lower, upper float64, levels int) ([]float64, error) {
	if levels <= 0 {
		return nil, fmt.Errorf("%w: levels must be > 0, got %d", validate.ErrInvalidLevelCount, levels)
	}
	if lower > upper {
		return nil, fmt.Errorf("%w: lower %v above upper %v", validate.ErrInvalidNumber, lower, upper)
	}
	lo := decimal.NewFromFloat(lower)
	step := decimal.NewFromFloat(upper).Sub(lo).Div(decimal.NewFromInt(int64(levels)))

	prices := make([]float64, 0, levels+1)
	for i := 0; i <= levels; i++ {
		p := lo.Add(step.Mul(decimal.NewFromInt(int64(i)))).Round(8)
		prices = append(prices, p.InexactFloat64())
	}
	return prices, nil
}

type GridParams struct {
	Symbol           string
	Lower            float64
	Upper            float64
	Levels           int
	QuantityPerOrder float64
}

type GridLevel struct {
	Price       float64
	BuyOrderID  int64
	SellOrderID int64
}

// GridFailure is a skipped level. BuyOrderID is set when the buy leg went through
// before the sell leg failed; that order is still live.
type GridFailure struct {
	Price      float64
	BuyOrderID int64
	Err        error
}

type GridResult struct {
	Outcome Outcome
	Prices  []float64
	Placed  []GridLevel
	Failed  []GridFailure
}

// Grid places a BUY and a SELL limit at every grid price.
type Grid struct {
	base
	ex exchange.ExchangeClient
}

func NewGrid(ex exchange.ExchangeClient, opts ...Option) *Grid {
	return &Grid{base: newBase(opts), ex: ex}
}

func (g *Grid) Run(ctx context.Context, p GridParams) (*GridResult, error) {
	prices, err := GridPrices(p.Lower, p.Upper, p.Levels)
	if err != nil {
		return nil, err
	}
	res := &GridResult{Outcome: OutcomeCompleted, Prices: prices}
	g.log.Infow("grid_start", "symbol", p.Symbol, "levels", p.Levels, "prices", prices, "qty", p.QuantityPerOrder)

	for _, price := range prices {
		if ctx.Err() != nil {
			res.Outcome = outcomeOf(ctx)
			break
		}

		buyReq := exchange.LimitOrder(p.Symbol, exchange.SideBuy, price, p.QuantityPerOrder)
		buyReq.ClientOrderID = exchange.NewClientOrderID("grid-b")
		buy, err := g.ex.PlaceOrder(ctx, buyReq)
		if err != nil {
			g.log.Errorw("grid_level_failed", "price", price, "leg", "buy", "err", err)
			res.Failed = append(res.Failed, GridFailure{Price: price, Err: err})
			continue
		}

		sellReq := exchange.LimitOrder(p.Symbol, exchange.SideSell, price, p.QuantityPerOrder)
		sellReq.ClientOrderID = exchange.NewClientOrderID("grid-s")
		sell, err := g.ex.PlaceOrder(ctx, sellReq)
		if err != nil {
			g.log.Errorw("grid_level_failed", "price", price, "leg", "sell", "buy_order_id", buy.OrderID, "err", err)
			res.Failed = append(res.Failed, GridFailure{Price: price, BuyOrderID: buy.OrderID, Err: err})
			continue
		}

		level := GridLevel{Price: price, BuyOrderID: buy.OrderID, SellOrderID: sell.OrderID}
		res.Placed = append(res.Placed, level)
		g.log.Infow("grid_level_placed", "price", price, "buy_order_id", buy.OrderID, "sell_order_id", sell.OrderID)
	}
	return res, nil
}
