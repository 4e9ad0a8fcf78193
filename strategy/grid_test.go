package strategy

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"futuresBot/exchange"
	"futuresBot/validate"
)

func TestGridPrices(t *testing.T) {
	tests := []struct {
		lower, upper float64
		levels       int
		want         []float64
	}{
		{10, 20, 4, []float64{10, 12.5, 15, 17.5, 20}},
		{1, 2, 3, []float64{1, 1.33333333, 1.66666667, 2}},
		{5, 5, 2, []float64{5, 5, 5}},
		{100, 101, 1, []float64{100, 101}},
	}
	for _, tt := range tests {
		got, err := GridPrices(tt.lower, tt.upper, tt.levels)
		if err != nil {
			t.Fatalf("GridPrices(%v, %v, %d): %v", tt.lower, tt.upper, tt.levels, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("GridPrices(%v, %v, %d) = %v, want %v", tt.lower, tt.upper, tt.levels, got, tt.want)
		}
	}
}

func TestGridPricesErrors(t *testing.T) {
	if _, err := GridPrices(10, 20, 0); !errors.Is(err, validate.ErrInvalidLevelCount) {
		t.Errorf("levels=0: got %v", err)
	}
	if _, err := GridPrices(20, 10, 4); !errors.Is(err, validate.ErrInvalidNumber) {
		t.Errorf("lower>upper: got %v", err)
	}
}

func TestGridPlacesBuyAndSellPerLevel(t *testing.T) {
	ex := &fakeExchange{}
	p := GridParams{Symbol: "BTCUSDT", Lower: 10, Upper: 20, Levels: 4, QuantityPerOrder: 0.1}
	res, err := NewGrid(ex).Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Placed) != 5 || len(res.Failed) != 0 {
		t.Fatalf("expected 5 placed levels, got %+v", res)
	}
	if len(ex.placed) != 10 {
		t.Fatalf("expected 10 orders, got %d", len(ex.placed))
	}
	for i := 0; i < len(ex.placed); i += 2 {
		buy, sell := ex.placed[i], ex.placed[i+1]
		if buy.Side != exchange.SideBuy || sell.Side != exchange.SideSell {
			t.Errorf("level %d: wrong sides %s/%s", i/2, buy.Side, sell.Side)
		}
		if buy.Price != sell.Price || buy.Price != res.Prices[i/2] {
			t.Errorf("level %d: price mismatch %v/%v", i/2, buy.Price, sell.Price)
		}
		if buy.Type != exchange.OrderTypeLimit || buy.TimeInForce != exchange.TimeInForceGTC {
			t.Errorf("level %d: expected GTC limit, got %+v", i/2, buy)
		}
	}
}

func TestGridLevelFailureContinues(t *testing.T) {
	// sell at the second level fails, buy at the fourth level fails.
	ex := &fakeExchange{placeErr: func(n int, req exchange.OrderRequest) error {
		if n == 3 || n == 6 {
			return errBoom
		}
		return nil
	}}
	p := GridParams{Symbol: "BTCUSDT", Lower: 10, Upper: 20, Levels: 4, QuantityPerOrder: 0.1}
	res, err := NewGrid(ex).Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Placed) != 3 || len(res.Failed) != 2 {
		t.Fatalf("expected 3 placed and 2 failed, got %d/%d", len(res.Placed), len(res.Failed))
	}
	if res.Failed[0].Price != 12.5 || res.Failed[0].BuyOrderID == 0 {
		t.Errorf("sell-leg failure should keep the live buy id, got %+v", res.Failed[0])
	}
	if res.Failed[1].Price != 17.5 || res.Failed[1].BuyOrderID != 0 {
		t.Errorf("buy-leg failure should have no order id, got %+v", res.Failed[1])
	}
	if len(ex.placed) != 9 {
		t.Errorf("expected 9 placement attempts, got %d", len(ex.placed))
	}
}
