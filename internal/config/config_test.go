package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8080")
	}
	if cfg.QuotaBytes != 100*1024 {
		t.Errorf("QuotaBytes = %d, want %d", cfg.QuotaBytes, 100*1024)
	}
	if cfg.QuotaThreshold != 0.9 {
		t.Errorf("QuotaThreshold = %v, want 0.9", cfg.QuotaThreshold)
	}
	if cfg.TrimLimit != 500 {
		t.Errorf("TrimLimit = %d, want 500", cfg.TrimLimit)
	}
	if cfg.RetryMax != 3 {
		t.Errorf("RetryMax = %d, want 3", cfg.RetryMax)
	}
	if cfg.KeepAliveInterval != 30*time.Second {
		t.Errorf("KeepAliveInterval = %v, want 30s", cfg.KeepAliveInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CLIPMARK_LISTEN_ADDR", ":9999")
	t.Setenv("CLIPMARK_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("CLIPMARK_QUOTA_BYTES", "2048")
	t.Setenv("CLIPMARK_QUOTA_THRESHOLD", "0.5")
	t.Setenv("CLIPMARK_RETRY_BASE", "250ms")
	t.Setenv("CLIPMARK_PRETTY_LOG", "false")
	t.Setenv("CLIPMARK_SEED_FILE", "/etc/clipmark/seed.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9999")
	}
	if cfg.RedisAddr != "redis.internal:6380" {
		t.Errorf("RedisAddr = %q, want %q", cfg.RedisAddr, "redis.internal:6380")
	}
	if cfg.QuotaBytes != 2048 {
		t.Errorf("QuotaBytes = %d, want 2048", cfg.QuotaBytes)
	}
	if cfg.QuotaThreshold != 0.5 {
		t.Errorf("QuotaThreshold = %v, want 0.5", cfg.QuotaThreshold)
	}
	if cfg.RetryBase != 250*time.Millisecond {
		t.Errorf("RetryBase = %v, want 250ms", cfg.RetryBase)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog = true, want false")
	}
	if cfg.SeedFile != "/etc/clipmark/seed.yaml" {
		t.Errorf("SeedFile = %q, want seed path", cfg.SeedFile)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero quota", "CLIPMARK_QUOTA_BYTES", "-1"},
		{"threshold above one", "CLIPMARK_QUOTA_THRESHOLD", "1.5"},
		{"zero trim limit", "CLIPMARK_TRIM_LIMIT", "0"},
		{"zero retry max", "CLIPMARK_RETRY_MAX", "-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Error("Load() succeeded, want validation error")
			}
		})
	}
}

func TestGetenvFallbacks(t *testing.T) {
	t.Setenv("CLIPMARK_TEST_INT", "not a number")
	if got := getenvInt("CLIPMARK_TEST_INT", 7); got != 7 {
		t.Errorf("getenvInt() = %d, want fallback 7", got)
	}

	t.Setenv("CLIPMARK_TEST_DUR", "bogus")
	if got := getenvDuration("CLIPMARK_TEST_DUR", time.Second); got != time.Second {
		t.Errorf("getenvDuration() = %v, want fallback 1s", got)
	}
}
