package strategy

import (
	"context"
	"fmt"
	"time"

	"futuresBot/exchange"
	"futuresBot/util"
)

type StopLimitConfig struct {
	PollInterval time.Duration
	// Timeout bounds the watch; zero watches until the context ends.
	Timeout time.Duration
}

func DefaultStopLimitConfig() StopLimitConfig {
	return StopLimitConfig{PollInterval: 2 * time.Second}
}

type StopLimitParams struct {
	Symbol       string
	Side         string
	Quantity     float64
	TriggerPrice float64
	LimitPrice   float64
}

type StopLimitResult struct {
	Outcome   Outcome
	LastPrice float64
	Checks    int
	Order     *exchange.OrderResponse
}

// StopLimit watches a price and places a limit order once it crosses the trigger:
// BUY fires at or below the trigger, SELL at or above.
type StopLimit struct {
	base
	ex     exchange.ExchangeClient
	prices PriceSource
	cfg    StopLimitConfig
}

func NewStopLimit(ex exchange.ExchangeClient, prices PriceSource, cfg StopLimitConfig, opts ...Option) *StopLimit {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultStopLimitConfig().PollInterval
	}
	if prices == nil {
		prices = TickerPrices{Ex: ex}
	}
	return &StopLimit{base: newBase(opts), ex: ex, prices: prices, cfg: cfg}
}

func (s *StopLimit) Run(ctx context.Context, p StopLimitParams) (*StopLimitResult, error) {
	s.log.Infow("stop_limit_watch", "symbol", p.Symbol, "side", p.Side, "qty", p.Quantity,
		"trigger", p.TriggerPrice, "limit", p.LimitPrice, "timeout", s.cfg.Timeout)

	res := &StopLimitResult{}
	var deadline time.Time
	if s.cfg.Timeout > 0 {
		deadline = s.clock.Now().Add(s.cfg.Timeout)
	}

	for {
		if ctx.Err() != nil {
			res.Outcome = outcomeOf(ctx)
			s.log.Infow("stop_limit_stopped", "outcome", res.Outcome.String(), "last_price", res.LastPrice)
			return res, nil
		}

		price, err := s.price(ctx, p.Symbol, deadline)
		if err != nil {
			s.log.Warnw("stop_limit_price_failed", "symbol", p.Symbol, "err", err)
		} else {
			res.Checks++
			res.LastPrice = price
			s.log.Debugw("stop_limit_price", "symbol", p.Symbol, "price", price)
			if Crossed(p.Side, price, p.TriggerPrice) {
				req := exchange.LimitOrder(p.Symbol, p.Side, p.LimitPrice, p.Quantity)
				req.ClientOrderID = exchange.NewClientOrderID("sl")
				order, err := s.ex.PlaceOrder(ctx, req)
				if err != nil {
					return res, fmt.Errorf("place stop-limit order: %w", err)
				}
				res.Outcome = OutcomeTriggered
				res.Order = order
				s.log.Infow("stop_limit_placed", "symbol", p.Symbol, "price", price, "order_id", order.OrderID)
				return res, nil
			}
		}

		if !deadline.IsZero() && !s.clock.Now().Before(deadline) {
			res.Outcome = OutcomeTimedOut
			s.log.Infow("stop_limit_stopped", "outcome", res.Outcome.String(), "last_price", res.LastPrice)
			return res, nil
		}
		_ = util.Sleep(ctx, s.clock, s.cfg.PollInterval)
	}
}

// price bounds one read by the time left before deadline.
func (s *StopLimit) price(ctx context.Context, symbol string, deadline time.Time) (float64, error) {
	if deadline.IsZero() {
		return s.prices.Price(ctx, symbol)
	}
	ctx, cancel := context.WithTimeout(ctx, deadline.Sub(s.clock.Now()))
	defer cancel()
	return s.prices.Price(ctx, symbol)
}

// Crossed reports whether price has reached trigger for an order on side.
func Crossed(side string, price, trigger float64) bool {
	switch side {
	case exchange.SideBuy:
		return price <= trigger
	case exchange.SideSell:
		return price >= trigger
	}
	return false
}
