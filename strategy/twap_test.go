package strategy

import (
	"context"
	"errors"
	"testing"
	"time"

	"futuresBot/exchange"
	"futuresBot/validate"
)

func TestTWAPSplitsEvenly(t *testing.T) {
	clock := testClock()
	ex := &fakeExchange{}
	p := TWAPParams{Symbol: "BTCUSDT", Side: exchange.SideBuy, TotalQuantity: 1.0, Slices: 4, Duration: 40 * time.Second}

	res, err := NewTWAP(ex, WithClock(clock)).Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeCompleted || res.SliceQty != 0.25 || res.Interval != 10*time.Second {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(ex.placed) != 4 {
		t.Fatalf("expected 4 market orders, got %d", len(ex.placed))
	}
	for i, req := range ex.placed {
		if req.Type != exchange.OrderTypeMarket || req.Quantity != 0.25 || req.Side != exchange.SideBuy {
			t.Errorf("slice %d: unexpected request %+v", i, req)
		}
	}
	sleeps := clock.Sleeps()
	if len(sleeps) != 4 {
		t.Fatalf("expected a sleep after every slice, got %v", sleeps)
	}
	for _, d := range sleeps {
		if d != 10*time.Second {
			t.Errorf("unexpected sleep %v", d)
		}
	}
	if res.Succeeded() != 4 {
		t.Errorf("Succeeded = %d", res.Succeeded())
	}
}

func TestTWAPRejectsZeroSlices(t *testing.T) {
	ex := &fakeExchange{}
	_, err := NewTWAP(ex, WithClock(testClock())).Run(context.Background(), TWAPParams{Symbol: "BTCUSDT", Side: exchange.SideBuy, TotalQuantity: 1, Slices: 0, Duration: time.Second})
	if !errors.Is(err, validate.ErrInvalidSliceCount) {
		t.Fatalf("expected ErrInvalidSliceCount, got %v", err)
	}
	if len(ex.placed) != 0 {
		t.Error("no orders expected")
	}
}

func TestTWAPSliceFailureDoesNotAbort(t *testing.T) {
	ex := &fakeExchange{placeErr: func(n int, req exchange.OrderRequest) error {
		if n == 1 {
			return errBoom
		}
		return nil
	}}
	p := TWAPParams{Symbol: "ETHUSDT", Side: exchange.SideSell, TotalQuantity: 0.3, Slices: 3, Duration: 3 * time.Second}
	res, err := NewTWAP(ex, WithClock(testClock())).Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slices) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(res.Slices))
	}
	if res.Slices[1].Err == nil || res.Slices[1].Order != nil {
		t.Errorf("slot 1 should hold the error, got %+v", res.Slices[1])
	}
	if res.Slices[0].Order == nil || res.Slices[2].Order == nil {
		t.Error("slots 0 and 2 should hold orders")
	}
	if res.Succeeded() != 2 {
		t.Errorf("Succeeded = %d", res.Succeeded())
	}
}

func TestTWAPCancelReturnsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ex := &fakeExchange{placeErr: func(n int, req exchange.OrderRequest) error {
		if n == 1 {
			cancel()
		}
		return nil
	}}
	p := TWAPParams{Symbol: "BTCUSDT", Side: exchange.SideBuy, TotalQuantity: 1, Slices: 4, Duration: 4 * time.Second}
	res, err := NewTWAP(ex, WithClock(testClock())).Run(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeCancelled {
		t.Errorf("expected CANCELLED, got %v", res.Outcome)
	}
	if len(res.Slices) != 2 {
		t.Errorf("expected 2 slices before cancel, got %d", len(res.Slices))
	}
}
