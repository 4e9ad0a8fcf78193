package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"futuresBot/logger"
)

const (
	streamReadTimeout = 30 * time.Second
	// a cached price older than this is not served
	streamMaxAge = streamReadTimeout
)

// PriceStream keeps the last traded price of one symbol from the mini-ticker stream.
type PriceStream struct {
	url    string
	symbol string
	log    *zap.SugaredLogger

	mu      sync.RWMutex
	last    float64
	updated time.Time

	readyOnce sync.Once
	ready     chan struct{}
}

// NewPriceStream subscribes to <wsBase>/ws/<symbol>@miniTicker once Run is called.
func NewPriceStream(wsBase, symbol string, log *zap.SugaredLogger) *PriceStream {
	if log == nil {
		log = logger.Nop()
	}
	return &PriceStream{
		url:    strings.TrimRight(wsBase, "/") + "/ws/" + strings.ToLower(symbol) + "@miniTicker",
		symbol: strings.ToUpper(symbol),
		log:    log,
		ready:  make(chan struct{}),
	}
}

// Run reads the stream until ctx ends, reconnecting with exponential backoff.
func (s *PriceStream) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.Reset()
	for {
		err := s.runOnce(ctx, b)
		if ctx.Err() != nil {
			return nil
		}
		wait := b.NextBackOff()
		s.log.Warnw("price_stream_disconnected", "symbol", s.symbol, "err", err, "retry_in", wait)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

func (s *PriceStream) runOnce(ctx context.Context, b *backoff.ExponentialBackOff) error {
	c, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("ws dial: %w", err)
	}
	defer c.Close()
	s.log.Infow("price_stream_connected", "url", s.url)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()

	for {
		_ = c.SetReadDeadline(time.Now().Add(streamReadTimeout))
		_, msg, err := c.ReadMessage()
		if err != nil {
			return err
		}
		var m miniTickerMsg
		if err := json.Unmarshal(msg, &m); err != nil {
			s.log.Debugw("price_stream_bad_message", "err", err)
			continue
		}
		if m.Symbol != s.symbol || m.Close == "" {
			continue
		}
		price := parseFloat(m.Close)
		if price <= 0 {
			continue
		}
		b.Reset()
		s.update(price)
	}
}

func (s *PriceStream) update(price float64) {
	s.mu.Lock()
	s.last = price
	s.updated = time.Now()
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
}

// Last returns the latest price, false until the first update arrives.
func (s *PriceStream) Last() (float64, bool) {
	p, _, ok := s.snapshot()
	return p, ok
}

func (s *PriceStream) snapshot() (float64, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == 0 {
		return 0, time.Time{}, false
	}
	return s.last, s.updated, true
}

// Price blocks until the first update, then returns the latest price. A price
// not refreshed within streamMaxAge (stream down or reconnecting) is an error.
func (s *PriceStream) Price(ctx context.Context, symbol string) (float64, error) {
	if !strings.EqualFold(symbol, s.symbol) {
		return 0, fmt.Errorf("price stream is for %s, not %s", s.symbol, symbol)
	}
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-s.ready:
	}
	p, at, ok := s.snapshot()
	if !ok {
		return 0, errors.New("price stream has no price")
	}
	if age := time.Since(at); age > streamMaxAge {
		return 0, fmt.Errorf("price stream for %s is stale, last update %s ago", s.symbol, age.Round(time.Second))
	}
	return p, nil
}
