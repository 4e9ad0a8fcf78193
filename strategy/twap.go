package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"futuresBot/exchange"
	"futuresBot/util"
	"futuresBot/validate"
)

type TWAPParams struct {
	Symbol        string
	Side          string
	TotalQuantity float64
	Slices        int
	Duration      time.Duration
}

// SliceResult is one slot of a TWAP run: either an order or the error that replaced it.
type SliceResult struct {
	Index    int
	Quantity float64
	Order    *exchange.OrderResponse
	Err      error
}

type TWAPResult struct {
	Outcome  Outcome
	SliceQty float64
	Interval time.Duration
	Slices   []SliceResult
}

func (r *TWAPResult) Succeeded() int {
	n := 0
	for _, s := range r.Slices {
		if s.Err == nil {
			n++
		}
	}
	return n
}

// TWAP splits a market order into equal slices spread over a duration.
type TWAP struct {
	base
	ex exchange.ExchangeClient
}

func NewTWAP(ex exchange.ExchangeClient, opts ...Option) *TWAP {
	return &TWAP{base: newBase(opts), ex: ex}
}

// Run places Slices market orders of TotalQuantity/Slices, waiting Duration/Slices after
// each one (the last included). A failed slice is recorded in its slot and the run goes on.
func (t *TWAP) Run(ctx context.Context, p TWAPParams) (*TWAPResult, error) {
	if p.Slices <= 0 {
		return nil, fmt.Errorf("%w: slices must be > 0, got %d", validate.ErrInvalidSliceCount, p.Slices)
	}
	n := int64(p.Slices)
	res := &TWAPResult{
		Outcome:  OutcomeCompleted,
		SliceQty: decimal.NewFromFloat(p.TotalQuantity).Div(decimal.NewFromInt(n)).InexactFloat64(),
		Interval: p.Duration / time.Duration(n),
		Slices:   make([]SliceResult, 0, p.Slices),
	}
	t.log.Infow("twap_start", "symbol", p.Symbol, "side", p.Side, "slices", p.Slices,
		"slice_qty", res.SliceQty, "interval", res.Interval)

	for i := 0; i < p.Slices; i++ {
		if ctx.Err() != nil {
			res.Outcome = outcomeOf(ctx)
			t.log.Infow("twap_stopped", "outcome", res.Outcome.String(), "placed", len(res.Slices))
			return res, nil
		}

		req := exchange.MarketOrder(p.Symbol, p.Side, res.SliceQty)
		req.ClientOrderID = exchange.NewClientOrderID(fmt.Sprintf("twap%d", i+1))
		order, err := t.ex.PlaceOrder(ctx, req)
		slice := SliceResult{Index: i, Quantity: res.SliceQty, Order: order, Err: err}
		if err != nil {
			slice.Order = nil
			t.log.Errorw("twap_slice_failed", "slice", i+1, "of", p.Slices, "err", err)
		} else {
			t.log.Infow("twap_slice_placed", "slice", i+1, "of", p.Slices, "order_id", order.OrderID)
		}
		res.Slices = append(res.Slices, slice)

		if err := util.Sleep(ctx, t.clock, res.Interval); err != nil && i < p.Slices-1 {
			res.Outcome = outcomeOf(ctx)
			t.log.Infow("twap_stopped", "outcome", res.Outcome.String(), "placed", len(res.Slices))
			return res, nil
		}
	}
	return res, nil
}
