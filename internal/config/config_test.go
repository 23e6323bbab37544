package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.HealthTimeout != 5*time.Second {
		t.Errorf("HealthTimeout = %v", cfg.HealthTimeout)
	}
	if cfg.HistoryCapacity != 10 {
		t.Errorf("HistoryCapacity = %d", cfg.HistoryCapacity)
	}
	if cfg.StorageType != "none" {
		t.Errorf("StorageType = %q", cfg.StorageType)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://names.example.com/ ")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://names.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = cfg.Apply(Overrides{
		APIBaseURL:     "http://localhost:9000/",
		RequestTimeout: 1500 * time.Millisecond,
		LogLevel:       "debug",
		BatchRate:      5,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:9000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.BatchRatePerSecond != 5 {
		t.Errorf("BatchRatePerSecond = %v", cfg.BatchRatePerSecond)
	}

	if err := cfg.Apply(Overrides{APIBaseURL: "ftp://nope"}); err == nil {
		t.Fatal("expected error for non-http base url")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := map[string]bool{
		"http://127.0.0.1:8000":       true,
		" https://api.example.com// ": true,
		"":                            false,
		"localhost:8000":              false,
		"http://":                     false,
	}
	for raw, ok := range cases {
		_, err := NormalizeBaseURL(raw)
		if ok && err != nil {
			t.Errorf("NormalizeBaseURL(%q) unexpected error %v", raw, err)
		}
		if !ok && err == nil {
			t.Errorf("NormalizeBaseURL(%q) expected error", raw)
		}
	}
}

func TestApplyKeepsSubSecondTimeout(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Apply(Overrides{RequestTimeout: 200 * time.Millisecond}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.RequestTimeout != 200*time.Millisecond {
		t.Fatalf("RequestTimeout = %v want 200ms", cfg.RequestTimeout)
	}

	// A later Apply without a timeout keeps the override.
	if err := cfg.Apply(Overrides{LogLevel: "info"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.RequestTimeout != 200*time.Millisecond {
		t.Fatalf("RequestTimeout = %v after second Apply", cfg.RequestTimeout)
	}
}
