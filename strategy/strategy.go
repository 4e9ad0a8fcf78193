package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"futuresBot/exchange"
	"futuresBot/logger"
	"futuresBot/util"
)

// cleanupTimeout bounds best-effort cancels that run after the caller's context is done.
const cleanupTimeout = 15 * time.Second

// Outcome is how a strategy run ended.
type Outcome int

const (
	OutcomeTriggered Outcome = iota
	OutcomeCompleted
	OutcomeTimedOut
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTriggered:
		return "TRIGGERED"
	case OutcomeCompleted:
		return "COMPLETED"
	case OutcomeTimedOut:
		return "TIMED_OUT"
	case OutcomeCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// outcomeOf maps a finished context to TimedOut or Cancelled.
func outcomeOf(ctx context.Context) Outcome {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return OutcomeTimedOut
	}
	return OutcomeCancelled
}

// PriceSource yields the current price of a symbol.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// TickerPrices reads prices from the REST ticker on every call.
type TickerPrices struct {
	Ex exchange.ExchangeClient
}

func (t TickerPrices) Price(ctx context.Context, symbol string) (float64, error) {
	p, err := t.Ex.GetSymbolPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}
	v := p.Value()
	if v <= 0 {
		return 0, fmt.Errorf("bad ticker price %q for %s", p.Price, symbol)
	}
	return v, nil
}

type base struct {
	clock util.Clock
	log   *zap.SugaredLogger
}

type Option func(*base)

func WithClock(clock util.Clock) Option {
	return func(b *base) { b.clock = clock }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(b *base) { b.log = log }
}

func newBase(opts []Option) base {
	b := base{clock: util.RealClock{}, log: logger.Nop()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// cancelBestEffort cancels one order and only logs a failure. It still runs when ctx is already done.
func (b base) cancelBestEffort(ctx context.Context, ex exchange.ExchangeClient, symbol string, orderID int64, what string) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if _, err := ex.CancelOrder(ctx, symbol, orderID); err != nil {
		b.log.Errorw("cancel_failed", "symbol", symbol, "order_id", orderID, "order", what, "err", err)
		return false
	}
	b.log.Infow("order_cancelled", "symbol", symbol, "order_id", orderID, "order", what)
	return true
}
