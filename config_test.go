package ripple

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RIPPLE_API_KEY", "secret")
	t.Setenv("RIPPLE_ENDPOINT", "https://collector.example.com/events")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := ClientConfig{
		APIKey:               "secret",
		Endpoint:             "https://collector.example.com/events",
		APIKeyHeader:         "X-API-Key",
		FlushInterval:        5 * time.Second,
		MaxBatchSize:         10,
		MaxRetries:           3,
		RetryInitialInterval: time.Second,
		RetryMaxInterval:     30 * time.Second,
		HTTPTimeout:          10 * time.Second,
		LogLevel:             "WARN",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RIPPLE_API_KEY", "secret")
	t.Setenv("RIPPLE_ENDPOINT", "http://localhost:3000/events")
	t.Setenv("RIPPLE_API_KEY_HEADER", "Authorization")
	t.Setenv("RIPPLE_FLUSH_INTERVAL", "250ms")
	t.Setenv("RIPPLE_MAX_BATCH_SIZE", "50")
	t.Setenv("RIPPLE_MAX_RETRIES", "-1")
	t.Setenv("RIPPLE_DISABLE_RETRIES", "true")
	t.Setenv("RIPPLE_STORAGE_PATH", "/var/lib/ripple")
	t.Setenv("RIPPLE_LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKeyHeader != "Authorization" {
		t.Errorf("unexpected header %q", cfg.APIKeyHeader)
	}
	if cfg.FlushInterval != 250*time.Millisecond {
		t.Errorf("unexpected flush interval %v", cfg.FlushInterval)
	}
	if cfg.MaxBatchSize != 50 || cfg.MaxRetries != -1 {
		t.Errorf("unexpected batch/retries %d/%d", cfg.MaxBatchSize, cfg.MaxRetries)
	}
	if !cfg.DisableRetries {
		t.Error("expected retries to be disabled")
	}
	if cfg.StoragePath != "/var/lib/ripple" {
		t.Errorf("unexpected storage path %q", cfg.StoragePath)
	}
	if cfg.LogLevel != LogLevel("DEBUG") {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("RIPPLE_FLUSH_INTERVAL", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}
