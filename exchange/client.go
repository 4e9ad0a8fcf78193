package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"futuresBot/config"
	"futuresBot/logger"
	"futuresBot/util"
)

const (
	pathOrder        = "/fapi/v1/order"
	pathAllOpen      = "/fapi/v1/allOpenOrders"
	pathOpenOrders   = "/fapi/v1/openOrders"
	pathPositionRisk = "/fapi/v2/positionRisk"
	pathBalance      = "/fapi/v2/balance"
	pathTickerPrice  = "/fapi/v1/ticker/price"
	pathTicker24h    = "/fapi/v1/ticker/24hr"
	pathExchangeInfo = "/fapi/v1/exchangeInfo"
	pathTime         = "/fapi/v1/time"

	headerAPIKey = "X-MBX-APIKEY"
)

// FuturesClient signs and sends USDT-M futures REST calls.
// Signed calls are stamped with local time plus the offset measured against the server clock.
type FuturesClient struct {
	apiKey    string
	apiSecret string
	baseURL   string

	recvWindow     time.Duration
	resyncInterval time.Duration
	syncTimeout    time.Duration

	http  *http.Client
	clock util.Clock
	log   *zap.SugaredLogger

	mu       sync.Mutex
	offsetMs int64
	lastSync time.Time
}

type Option func(*FuturesClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *FuturesClient) { c.http = hc }
}

func WithClock(clock util.Clock) Option {
	return func(c *FuturesClient) { c.clock = clock }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *FuturesClient) { c.log = log }
}

// NewFuturesClient fails fast on missing credentials and then syncs the clock once.
// A failed sync is not fatal: the client keeps a zero offset and signs with local time.
func NewFuturesClient(ctx context.Context, cfg config.Exchange, opts ...Option) (*FuturesClient, error) {
	c := &FuturesClient{
		apiKey:         cfg.APIKey,
		apiSecret:      cfg.APISecret,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		recvWindow:     cfg.RecvWindow,
		resyncInterval: cfg.ResyncInterval,
		syncTimeout:    cfg.SyncTimeout,
		http:           &http.Client{Timeout: cfg.HTTPTimeout},
		clock:          util.RealClock{},
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" || c.apiSecret == "" {
		c.log.Errorw("credentials_missing")
		return nil, ErrCredentialsMissing
	}
	if c.recvWindow <= 0 {
		c.recvWindow = 5 * time.Second
	}
	if c.syncTimeout <= 0 {
		c.syncTimeout = 5 * time.Second
	}

	if err := c.SyncTime(ctx); err != nil {
		c.log.Warnw("time_sync_failed_using_local_time", "err", err)
	}
	return c, nil
}

// SyncTime measures server time minus local time and stores it for signing.
func (c *FuturesClient) SyncTime(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.syncTimeout)
	defer cancel()

	var st ServerTime
	if err := c.do(ctx, http.MethodGet, pathTime, nil, false, &st); err != nil {
		return err
	}
	if st.ServerTime <= 0 {
		return fmt.Errorf("sync time: bad serverTime %d", st.ServerTime)
	}
	now := c.clock.Now()
	offset := st.ServerTime - now.UnixMilli()

	c.mu.Lock()
	c.offsetMs = offset
	c.lastSync = now
	c.mu.Unlock()

	c.log.Infow("time_synced", "server_time", st.ServerTime, "local_time", now.UnixMilli(), "offset_ms", offset)
	return nil
}

// Offset returns the current server-minus-local clock delta.
func (c *FuturesClient) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(c.offsetMs) * time.Millisecond
}

func (c *FuturesClient) timestamp() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Now().UnixMilli() + c.offsetMs
}

func (c *FuturesClient) maybeResync(ctx context.Context) {
	if c.resyncInterval <= 0 {
		return
	}
	c.mu.Lock()
	stale := c.clock.Now().Sub(c.lastSync) >= c.resyncInterval
	c.mu.Unlock()
	if !stale {
		return
	}
	if err := c.SyncTime(ctx); err != nil {
		// keep the previous offset and wait a full interval before the next attempt
		c.mu.Lock()
		c.lastSync = c.clock.Now()
		c.mu.Unlock()
		c.log.Warnw("time_resync_failed", "err", err)
	}
}

// Sign is the hex HMAC-SHA256 of payload keyed by secret.
func Sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Request sends one call and returns the JSON body. Signed calls get timestamp, recvWindow
// (unless the caller set one) and a trailing signature over the encoded query.
// Status >= 400 yields *APIError; transport failures yield *NetworkError.
func (c *FuturesClient) Request(ctx context.Context, method, path string, params url.Values, signed bool) (json.RawMessage, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	if signed {
		c.maybeResync(ctx)
		q.Set("timestamp", strconv.FormatInt(c.timestamp(), 10))
		if q.Get("recvWindow") == "" {
			q.Set("recvWindow", strconv.FormatInt(c.recvWindow.Milliseconds(), 10))
		}
	}
	query := q.Encode()
	if signed {
		query += "&signature=" + Sign(c.apiSecret, query)
	}

	u := c.baseURL + path
	if query != "" {
		u += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Errorw("network_error", "method", method, "path", path, "err", err)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorw("network_error", "method", method, "path", path, "err", err)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode, body)
		c.log.Errorw("http_error", "method", method, "path", path, "status", resp.StatusCode, "body", apiErr.Body)
		return nil, apiErr
	}
	if !json.Valid(body) {
		body = []byte("{}")
	}

	c.log.Infow("request", "method", method, "path", path, "params", params.Encode(), "response", string(body))
	return json.RawMessage(body), nil
}

func (c *FuturesClient) do(ctx context.Context, method, path string, params url.Values, signed bool, out any) error {
	raw, err := c.Request(ctx, method, path, params, signed)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
