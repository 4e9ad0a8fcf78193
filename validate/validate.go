// Package validate normalizes and rejects malformed CLI input before any
// request reaches the exchange.
package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidSymbol     = errors.New("invalid symbol")
	ErrInvalidSide       = errors.New("invalid side")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrInvalidSliceCount = errors.New("invalid slice count")
	ErrInvalidLevelCount = errors.New("invalid level count")
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// Symbol upper-cases s and requires it to be alphanumeric, e.g. "btcusdt" -> "BTCUSDT".
func Symbol(s string) (string, error) {
	sym := strings.ToUpper(s)
	if !symbolPattern.MatchString(sym) {
		return "", fmt.Errorf("%w %q, example: BTCUSDT", ErrInvalidSymbol, s)
	}
	return sym, nil
}

// Side returns BUY or SELL.
func Side(s string) (string, error) {
	side := strings.ToUpper(s)
	if side != "BUY" && side != "SELL" {
		return "", fmt.Errorf("%w %q, must be BUY or SELL", ErrInvalidSide, s)
	}
	return side, nil
}

func Quantity(s string) (float64, error) { return positive("quantity", s) }

func Price(s string) (float64, error) { return positive("price", s) }

// Seconds parses a non-negative duration in seconds.
func Seconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: seconds must be a non-negative number, got %q", ErrInvalidNumber, s)
	}
	return v, nil
}

func SliceCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: slices must be > 0, got %q", ErrInvalidSliceCount, s)
	}
	return n, nil
}

func LevelCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: levels must be > 0, got %q", ErrInvalidLevelCount, s)
	}
	return n, nil
}

func OrderID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: order id must be a positive integer, got %q", ErrInvalidNumber, s)
	}
	return id, nil
}

func positive(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidNumber, name, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be > 0, got %q", ErrInvalidNumber, name, s)
	}
	return v, nil
}
