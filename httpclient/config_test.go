package httpclient

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %v", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.UserAgent, "mercurekit/") {
		t.Errorf("expected mercurekit user agent, got %q", cfg.UserAgent)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 2 * time.Second, UserAgent: "app/1"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "app/1" {
		t.Errorf("expected user agent preserved, got %q", cfg.UserAgent)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"positive", 10 * time.Second, false},
		{"negative", -1, true},
		{"zero", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Timeout: tt.timeout}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_NegativeTimeoutRejected(t *testing.T) {
	if _, err := New(Config{Timeout: -time.Second}); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}
