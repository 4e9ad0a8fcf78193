package strategy

import (
	"context"
	"fmt"
	"time"

	"futuresBot/exchange"
	"futuresBot/util"
)

type OCOConfig struct {
	PollInterval time.Duration
	Timeout      time.Duration
	// CancelOnTimeout cancels both legs when the run times out or is cancelled.
	// Off by default: the legs stay live on the exchange.
	CancelOnTimeout bool
}

func DefaultOCOConfig() OCOConfig {
	return OCOConfig{
		PollInterval: 2 * time.Second,
		Timeout:      time.Hour,
	}
}

// OCOParams describes the entry; both exit legs go on the opposite side.
type OCOParams struct {
	Symbol          string
	Side            string
	Quantity        float64
	TakeProfitPrice float64
	StopPrice       float64
	StopLimitPrice  float64
}

type Leg string

const (
	LegNone       Leg = ""
	LegTakeProfit Leg = "tp"
	LegStop       Leg = "stop"
)

type OCOResult struct {
	Outcome    Outcome
	FilledLeg  Leg
	TakeProfit *exchange.OrderResponse
	Stop       *exchange.OrderResponse
	// Filled is the last polled status of the filled leg.
	Filled *exchange.OrderResponse
	// SiblingCancelled, or LegsCancelled on timeout, reports whether cleanup went through.
	SiblingCancelled bool
	LegsCancelled    bool
}

// Tag is "tp filled", "stop filled" or "no fill".
func (r *OCOResult) Tag() string {
	if r.FilledLeg == LegNone {
		return "no fill"
	}
	return string(r.FilledLeg) + " filled"
}

// PartialPlacementError means the take-profit leg is live but the stop leg was not placed.
// The live order is unmanaged and must be reconciled by the caller.
type PartialPlacementError struct {
	Placed *exchange.OrderResponse
	Err    error
}

func (e *PartialPlacementError) Error() string {
	return fmt.Sprintf("stop leg placement failed, take-profit order %d left live: %v", e.Placed.OrderID, e.Err)
}

func (e *PartialPlacementError) Unwrap() error { return e.Err }

// OCO places a take-profit limit and a stop order, then polls until one of them fills
// and cancels the other. The take-profit leg is checked first on every poll, so when
// both fill between two polls the take-profit wins.
type OCO struct {
	base
	ex  exchange.ExchangeClient
	cfg OCOConfig
}

func NewOCO(ex exchange.ExchangeClient, cfg OCOConfig, opts ...Option) *OCO {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultOCOConfig().PollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOCOConfig().Timeout
	}
	return &OCO{base: newBase(opts), ex: ex, cfg: cfg}
}

func (o *OCO) Run(ctx context.Context, p OCOParams) (*OCOResult, error) {
	exitSide := exchange.OppositeSide(p.Side)

	o.log.Infow("oco_state", "state", "PLACING_TP", "symbol", p.Symbol, "side", exitSide, "price", p.TakeProfitPrice, "qty", p.Quantity)
	tpReq := exchange.LimitOrder(p.Symbol, exitSide, p.TakeProfitPrice, p.Quantity)
	tpReq.ClientOrderID = exchange.NewClientOrderID("oco-tp")
	tp, err := o.ex.PlaceOrder(ctx, tpReq)
	if err != nil {
		return nil, fmt.Errorf("place take-profit: %w", err)
	}

	o.log.Infow("oco_state", "state", "PLACING_STOP", "symbol", p.Symbol, "side", exitSide, "stop_price", p.StopPrice, "price", p.StopLimitPrice)
	stopReq := exchange.StopOrder(p.Symbol, exitSide, p.StopPrice, p.StopLimitPrice, p.Quantity)
	stopReq.ClientOrderID = exchange.NewClientOrderID("oco-sl")
	stop, err := o.ex.PlaceOrder(ctx, stopReq)
	if err != nil {
		o.log.Errorw("oco_partial_placement", "symbol", p.Symbol, "tp_order_id", tp.OrderID, "err", err)
		return nil, &PartialPlacementError{Placed: tp, Err: err}
	}

	res := &OCOResult{TakeProfit: tp, Stop: stop}
	o.log.Infow("oco_state", "state", "POLLING", "tp_order_id", tp.OrderID, "stop_order_id", stop.OrderID,
		"interval", o.cfg.PollInterval, "timeout", o.cfg.Timeout)

	deadline := o.clock.Now().Add(o.cfg.Timeout)
	for {
		if ctx.Err() != nil {
			return o.giveUp(ctx, p.Symbol, res, outcomeOf(ctx)), nil
		}

		leg, status := o.poll(ctx, p.Symbol, tp.OrderID, stop.OrderID)
		if leg != LegNone {
			res.Outcome = OutcomeTriggered
			res.FilledLeg = leg
			res.Filled = status
			state, sibling, name := "TP_FILLED", stop.OrderID, "stop"
			if leg == LegStop {
				state, sibling, name = "STOP_FILLED", tp.OrderID, "tp"
			}
			o.log.Infow("oco_state", "state", state, "order_id", status.OrderID, "executed_qty", status.ExecutedQty)
			res.SiblingCancelled = o.cancelBestEffort(ctx, o.ex, p.Symbol, sibling, name)
			return res, nil
		}

		if !o.clock.Now().Before(deadline) {
			return o.giveUp(ctx, p.Symbol, res, OutcomeTimedOut), nil
		}
		_ = util.Sleep(ctx, o.clock, o.cfg.PollInterval)
	}
}

// poll reads both legs; a failed status read is logged and treated as not filled.
func (o *OCO) poll(ctx context.Context, symbol string, tpID, stopID int64) (Leg, *exchange.OrderResponse) {
	tp, err := o.ex.QueryOrder(ctx, symbol, tpID)
	if err != nil {
		o.log.Warnw("oco_status_query_failed", "order_id", tpID, "err", err)
	} else if tp.Filled() {
		return LegTakeProfit, tp
	}

	stop, err := o.ex.QueryOrder(ctx, symbol, stopID)
	if err != nil {
		o.log.Warnw("oco_status_query_failed", "order_id", stopID, "err", err)
	} else if stop.Filled() {
		return LegStop, stop
	}
	return LegNone, nil
}

func (o *OCO) giveUp(ctx context.Context, symbol string, res *OCOResult, outcome Outcome) *OCOResult {
	res.Outcome = outcome
	o.log.Infow("oco_state", "state", outcome.String(), "tp_order_id", res.TakeProfit.OrderID,
		"stop_order_id", res.Stop.OrderID, "cancel_legs", o.cfg.CancelOnTimeout)
	if o.cfg.CancelOnTimeout {
		tpOK := o.cancelBestEffort(ctx, o.ex, symbol, res.TakeProfit.OrderID, "tp")
		stopOK := o.cancelBestEffort(ctx, o.ex, symbol, res.Stop.OrderID, "stop")
		res.LegsCancelled = tpOK && stopOK
	}
	return res
}
