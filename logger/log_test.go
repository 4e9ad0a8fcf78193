package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"futuresBot/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	log, err := New(config.Log{File: path, MaxSizeMB: 1, MaxBackups: 1, Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Sugar().Infow("order_placed", "symbol", "BTCUSDT", "order_id", 123)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"level":"INFO"`, `"msg":"order_placed"`, `"symbol":"BTCUSDT"`, `"ts":`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(config.Log{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	log, err := New(config.Log{File: path, MaxSizeMB: 1, Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Errorf("level filter not applied: %s", data)
	}
}
