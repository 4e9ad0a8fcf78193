package exchange

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
)

var _ ExchangeClient = (*FuturesClient)(nil)

func (c *FuturesClient) PlaceOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	return c.orderCall(ctx, http.MethodPost, req.Params())
}

func (c *FuturesClient) PlaceMarketOrder(ctx context.Context, symbol, side string, qty float64) (*OrderResponse, error) {
	return c.PlaceOrder(ctx, MarketOrder(symbol, side, qty))
}

func (c *FuturesClient) PlaceLimitOrder(ctx context.Context, symbol, side string, price, qty float64) (*OrderResponse, error) {
	return c.PlaceOrder(ctx, LimitOrder(symbol, side, price, qty))
}

func (c *FuturesClient) QueryOrder(ctx context.Context, symbol string, orderID int64) (*OrderResponse, error) {
	return c.orderCall(ctx, http.MethodGet, orderParams(symbol, orderID))
}

func (c *FuturesClient) CancelOrder(ctx context.Context, symbol string, orderID int64) (*OrderResponse, error) {
	return c.orderCall(ctx, http.MethodDelete, orderParams(symbol, orderID))
}

func (c *FuturesClient) CancelAllOrders(ctx context.Context, symbol string) (*CancelAllResponse, error) {
	var out CancelAllResponse
	if err := c.do(ctx, http.MethodDelete, pathAllOpen, symbolParams(symbol), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FuturesClient) OpenOrders(ctx context.Context, symbol string) ([]OrderResponse, error) {
	var out []OrderResponse
	if err := c.do(ctx, http.MethodGet, pathOpenOrders, symbolParams(symbol), true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PositionRisk lists positions; an empty symbol means all symbols.
func (c *FuturesClient) PositionRisk(ctx context.Context, symbol string) ([]PositionRisk, error) {
	var out []PositionRisk
	if err := c.do(ctx, http.MethodGet, pathPositionRisk, symbolParams(symbol), true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FuturesClient) Balances(ctx context.Context) ([]Balance, error) {
	var out []Balance
	if err := c.do(ctx, http.MethodGet, pathBalance, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FuturesClient) GetSymbolPrice(ctx context.Context, symbol string) (*SymbolPrice, error) {
	var out SymbolPrice
	if err := c.do(ctx, http.MethodGet, pathTickerPrice, symbolParams(symbol), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FuturesClient) Ticker24h(ctx context.Context, symbol string) (*Ticker24h, error) {
	var out Ticker24h
	if err := c.do(ctx, http.MethodGet, pathTicker24h, symbolParams(symbol), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FuturesClient) ExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	var out ExchangeInfo
	if err := c.do(ctx, http.MethodGet, pathExchangeInfo, nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FuturesClient) ServerTime(ctx context.Context) (*ServerTime, error) {
	var out ServerTime
	if err := c.do(ctx, http.MethodGet, pathTime, nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FuturesClient) orderCall(ctx context.Context, method string, params url.Values) (*OrderResponse, error) {
	raw, err := c.Request(ctx, method, pathOrder, params, true)
	if err != nil {
		return nil, err
	}
	var out OrderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	out.Raw = raw
	return &out, nil
}

func orderParams(symbol string, orderID int64) url.Values {
	p := url.Values{}
	p.Set("symbol", symbol)
	p.Set("orderId", strconv.FormatInt(orderID, 10))
	return p
}

func symbolParams(symbol string) url.Values {
	p := url.Values{}
	if symbol != "" {
		p.Set("symbol", symbol)
	}
	return p
}
