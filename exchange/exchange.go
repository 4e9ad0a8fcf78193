package exchange

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	OrderTypeMarket = "MARKET"
	OrderTypeLimit  = "LIMIT"
	OrderTypeStop   = "STOP"

	TimeInForceGTC = "GTC"
)

// ExchangeClient is everything the strategies and the CLI need from the venue.
type ExchangeClient interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)
	QueryOrder(ctx context.Context, symbol string, orderID int64) (*OrderResponse, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) (*OrderResponse, error)
	CancelAllOrders(ctx context.Context, symbol string) (*CancelAllResponse, error)
	OpenOrders(ctx context.Context, symbol string) ([]OrderResponse, error)
	PositionRisk(ctx context.Context, symbol string) ([]PositionRisk, error)
	Balances(ctx context.Context) ([]Balance, error)
	GetSymbolPrice(ctx context.Context, symbol string) (*SymbolPrice, error)
	Ticker24h(ctx context.Context, symbol string) (*Ticker24h, error)
	ExchangeInfo(ctx context.Context) (*ExchangeInfo, error)
}

// OrderRequest is built right before a placement call and not kept.
// Zero Price/StopPrice and empty strings are left off the wire.
type OrderRequest struct {
	Symbol        string
	Side          string
	Type          string
	Quantity      float64
	Price         float64
	StopPrice     float64
	TimeInForce   string
	ReduceOnly    bool
	ClientOrderID string
}

func MarketOrder(symbol, side string, qty float64) OrderRequest {
	return OrderRequest{Symbol: symbol, Side: side, Type: OrderTypeMarket, Quantity: qty}
}

func LimitOrder(symbol, side string, price, qty float64) OrderRequest {
	return OrderRequest{
		Symbol:      symbol,
		Side:        side,
		Type:        OrderTypeLimit,
		Quantity:    qty,
		Price:       price,
		TimeInForce: TimeInForceGTC,
	}
}

// StopOrder triggers at stopPrice and then rests as a limit at price.
func StopOrder(symbol, side string, stopPrice, price, qty float64) OrderRequest {
	return OrderRequest{
		Symbol:      symbol,
		Side:        side,
		Type:        OrderTypeStop,
		Quantity:    qty,
		Price:       price,
		StopPrice:   stopPrice,
		TimeInForce: TimeInForceGTC,
	}
}

// Params renders the request as query parameters.
func (r OrderRequest) Params() url.Values {
	p := url.Values{}
	p.Set("symbol", r.Symbol)
	p.Set("side", r.Side)
	p.Set("type", r.Type)
	p.Set("quantity", FormatNumber(r.Quantity))
	if r.Price > 0 {
		p.Set("price", FormatNumber(r.Price))
	}
	if r.TimeInForce != "" {
		p.Set("timeInForce", r.TimeInForce)
	}
	if r.ReduceOnly {
		p.Set("reduceOnly", "true")
	}
	if r.StopPrice > 0 {
		p.Set("stopPrice", FormatNumber(r.StopPrice))
	}
	if r.ClientOrderID != "" {
		p.Set("newClientOrderId", r.ClientOrderID)
	}
	return p
}

// FormatNumber writes v in its shortest exact decimal form, never in exponent notation.
func FormatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// OppositeSide flips BUY and SELL.
func OppositeSide(side string) string {
	if side == SideBuy {
		return SideSell
	}
	return SideBuy
}

// NewClientOrderID tags an order with prefix plus a random suffix, within the venue's 36 char limit.
func NewClientOrderID(prefix string) string {
	id := prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > 36 {
		id = id[:36]
	}
	return id
}
