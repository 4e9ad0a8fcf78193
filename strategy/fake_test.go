package strategy

import (
	"context"
	"errors"
	"sync"
	"time"

	"futuresBot/exchange"
	"futuresBot/util"
)

var errBoom = errors.New("boom")

func testClock() *util.ManualClock {
	return util.NewManualClock(time.Unix(1_700_000_000, 0))
}

// fakeExchange records calls. Anything not overridden panics through the nil embed.
type fakeExchange struct {
	exchange.ExchangeClient

	mu        sync.Mutex
	nextID    int64
	placed    []exchange.OrderRequest
	cancelled []int64
	queries   []int64

	placeErr  func(n int, req exchange.OrderRequest) error
	query     func(orderID int64, n int) (*exchange.OrderResponse, error)
	cancelErr error
	prices    []float64
	priceErr  error
	positions [][]exchange.PositionRisk
}

func (f *fakeExchange) PlaceOrder(ctx context.Context, req exchange.OrderRequest) (*exchange.OrderResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.placed)
	f.placed = append(f.placed, req)
	if f.placeErr != nil {
		if err := f.placeErr(n, req); err != nil {
			return nil, err
		}
	}
	f.nextID++
	return &exchange.OrderResponse{
		OrderID:       100 + f.nextID,
		ClientOrderID: req.ClientOrderID,
		Symbol:        req.Symbol,
		Side:          req.Side,
		Type:          req.Type,
		Status:        "NEW",
		ExecutedQty:   "0",
	}, nil
}

func (f *fakeExchange) QueryOrder(ctx context.Context, symbol string, orderID int64) (*exchange.OrderResponse, error) {
	f.mu.Lock()
	f.queries = append(f.queries, orderID)
	n := len(f.queries)
	f.mu.Unlock()
	if f.query != nil {
		return f.query(orderID, n)
	}
	return &exchange.OrderResponse{OrderID: orderID, Status: "NEW", ExecutedQty: "0"}, nil
}

func (f *fakeExchange) CancelOrder(ctx context.Context, symbol string, orderID int64) (*exchange.OrderResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, orderID)
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &exchange.OrderResponse{OrderID: orderID, Status: "CANCELED"}, nil
}

func (f *fakeExchange) GetSymbolPrice(ctx context.Context, symbol string) (*exchange.SymbolPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.priceErr != nil {
		err := f.priceErr
		f.priceErr = nil
		return nil, err
	}
	p := f.prices[0]
	if len(f.prices) > 1 {
		f.prices = f.prices[1:]
	}
	return &exchange.SymbolPrice{Symbol: symbol, Price: exchange.FormatNumber(p)}, nil
}

func (f *fakeExchange) PositionRisk(ctx context.Context, symbol string) ([]exchange.PositionRisk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.positions) == 0 {
		return nil, nil
	}
	p := f.positions[0]
	if len(f.positions) > 1 {
		f.positions = f.positions[1:]
	}
	return p, nil
}

func filled(orderID int64) *exchange.OrderResponse {
	return &exchange.OrderResponse{OrderID: orderID, Status: "FILLED", ExecutedQty: "0.01"}
}
