package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Exchange.BaseURL != "https://fapi.binance.com" {
		t.Errorf("unexpected base url %q", cfg.Exchange.BaseURL)
	}
	if cfg.Exchange.RecvWindow != 5*time.Second {
		t.Errorf("expected 5s recv window, got %v", cfg.Exchange.RecvWindow)
	}
	if cfg.Exchange.HTTPTimeout != 15*time.Second || cfg.Exchange.SyncTimeout != 5*time.Second {
		t.Errorf("unexpected timeouts: %+v", cfg.Exchange)
	}
	if cfg.Exchange.ResyncInterval != 0 {
		t.Errorf("re-sync should be disabled by default")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")
	t.Setenv("BINANCE_BASE_URL", "https://testnet.binancefuture.com")
	t.Setenv("BINANCE_RECV_WINDOW_MS", "10000")
	t.Setenv("BINANCE_RESYNC_INTERVAL_SEC", "600")
	t.Setenv("LOG_MAX_SIZE_MB", "not-a-number")

	cfg := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.Exchange.APIKey != "key" || cfg.Exchange.APISecret != "secret" {
		t.Errorf("credentials not loaded: %+v", cfg.Exchange)
	}
	if cfg.Exchange.BaseURL != "https://testnet.binancefuture.com" {
		t.Errorf("base url override ignored: %q", cfg.Exchange.BaseURL)
	}
	if cfg.Exchange.RecvWindow != 10*time.Second {
		t.Errorf("expected 10s recv window, got %v", cfg.Exchange.RecvWindow)
	}
	if cfg.Exchange.ResyncInterval != 10*time.Minute {
		t.Errorf("expected 10m re-sync, got %v", cfg.Exchange.ResyncInterval)
	}
	if cfg.Log.MaxSizeMB != 5 {
		t.Errorf("bad int should keep default, got %d", cfg.Log.MaxSizeMB)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")
	os.Unsetenv("BINANCE_API_KEY")
	os.Unsetenv("BINANCE_API_SECRET")

	path := filepath.Join(t.TempDir(), ".env")
	content := "BINANCE_API_KEY=filekey\nBINANCE_API_SECRET=filesecret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg := LoadFromEnv(path)
	if cfg.Exchange.APIKey != "filekey" || cfg.Exchange.APISecret != "filesecret" {
		t.Errorf("expected credentials from .env, got %+v", cfg.Exchange)
	}
}
