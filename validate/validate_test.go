package validate

import (
	"errors"
	"testing"
)

func TestSymbol(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{"BTCUSDT", "BTCUSDT", false},
		{"ethusdt", "ETHUSDT", false},
		{"1000PEPEUSDT", "1000PEPEUSDT", false},
		{"btc-usdt", "", true},
		{"BTC/USDT", "", true},
		{"", "", true},
		{" BTCUSDT", "", true},
		{"BTCUSDT ", "", true},
		{"btcusdt\n", "", true},
	}
	for _, c := range cases {
		got, err := Symbol(c.in)
		if c.err {
			if !errors.Is(err, ErrInvalidSymbol) {
				t.Errorf("Symbol(%q): expected ErrInvalidSymbol, got %v", c.in, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("Symbol(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}
}

func TestSide(t *testing.T) {
	if s, err := Side("buy"); err != nil || s != "BUY" {
		t.Errorf("Side(buy) = %q, %v", s, err)
	}
	if s, err := Side("Sell"); err != nil || s != "SELL" {
		t.Errorf("Side(Sell) = %q, %v", s, err)
	}
	if _, err := Side(" buy"); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("Side with padding: expected ErrInvalidSide, got %v", err)
	}
	if _, err := Side("long"); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("expected ErrInvalidSide, got %v", err)
	}
}

func TestQuantity(t *testing.T) {
	for _, bad := range []string{"0", "-1", "abc", "NaN", "Inf", ""} {
		if _, err := Quantity(bad); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("Quantity(%q): expected ErrInvalidNumber, got %v", bad, err)
		}
	}
	q, err := Quantity("0.5")
	if err != nil || q != 0.5 {
		t.Errorf("Quantity(0.5) = %v, %v", q, err)
	}
}

func TestPrice(t *testing.T) {
	if _, err := Price("-3"); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
	p, err := Price("65000.5")
	if err != nil || p != 65000.5 {
		t.Errorf("Price = %v, %v", p, err)
	}
}

func TestCounts(t *testing.T) {
	if _, err := SliceCount("0"); !errors.Is(err, ErrInvalidSliceCount) {
		t.Errorf("expected ErrInvalidSliceCount, got %v", err)
	}
	if n, err := SliceCount("4"); err != nil || n != 4 {
		t.Errorf("SliceCount(4) = %d, %v", n, err)
	}
	if _, err := LevelCount("-2"); !errors.Is(err, ErrInvalidLevelCount) {
		t.Errorf("expected ErrInvalidLevelCount, got %v", err)
	}
}

func TestOrderIDAndSeconds(t *testing.T) {
	if id, err := OrderID("123"); err != nil || id != 123 {
		t.Errorf("OrderID(123) = %d, %v", id, err)
	}
	if _, err := OrderID("0"); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
	if s, err := Seconds("0"); err != nil || s != 0 {
		t.Errorf("Seconds(0) = %v, %v", s, err)
	}
	if _, err := Seconds("-1"); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
}
