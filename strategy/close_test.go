package strategy

import (
	"context"
	"testing"

	"futuresBot/exchange"
)

func TestClosePositionLong(t *testing.T) {
	ex := &fakeExchange{positions: [][]exchange.PositionRisk{
		{{Symbol: "BTCUSDT", PositionAmt: "0.015"}},
		{{Symbol: "BTCUSDT", PositionAmt: "0"}},
	}}
	res, err := ClosePosition(context.Background(), ex, "BTCUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Closed() || res.Side != exchange.SideSell || res.Quantity != 0.015 {
		t.Fatalf("unexpected result %+v", res)
	}
	req := ex.placed[0]
	if !req.ReduceOnly || req.Type != exchange.OrderTypeMarket {
		t.Errorf("expected reduce-only market order, got %+v", req)
	}
}

func TestClosePositionShortPartial(t *testing.T) {
	ex := &fakeExchange{positions: [][]exchange.PositionRisk{
		{{Symbol: "BTCUSDT", PositionAmt: "-2"}},
		{{Symbol: "BTCUSDT", PositionAmt: "-0.5"}},
	}}
	res, err := ClosePosition(context.Background(), ex, "BTCUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if res.Side != exchange.SideBuy || res.Quantity != 2 {
		t.Errorf("unexpected close side/qty %+v", res)
	}
	if res.Closed() || res.FinalAmount != -0.5 {
		t.Errorf("expected a partial close, got %+v", res)
	}
}

func TestClosePositionFlat(t *testing.T) {
	ex := &fakeExchange{positions: [][]exchange.PositionRisk{{{Symbol: "BTCUSDT", PositionAmt: "0.000"}}}}
	res, err := ClosePosition(context.Background(), ex, "BTCUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if !res.NoPosition || len(ex.placed) != 0 {
		t.Errorf("expected no order for a flat position, got %+v", res)
	}
}
