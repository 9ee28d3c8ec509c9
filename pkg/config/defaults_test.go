package config

import (
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Expected default store type 'memory', got %q", cfg.Store.Type)
	}
	if cfg.Store.SearchLimit != timeline.DefaultSearchLimit {
		t.Errorf("Expected default search limit %d, got %d", timeline.DefaultSearchLimit, cfg.Store.SearchLimit)
	}
	if cfg.Store.Memory == nil {
		t.Error("Expected memory config map to be initialized")
	}
	if cfg.Store.Badger == nil {
		t.Error("Expected badger config map to be initialized")
	}
	if inMemory, ok := cfg.Store.Badger["in_memory"]; !ok || inMemory != true {
		t.Errorf("Expected badger in_memory default true, got %v", inMemory)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.Metrics.Port != DefaultMetricsPort {
		t.Errorf("Expected default metrics port %d, got %d", DefaultMetricsPort, cfg.Metrics.Port)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "debug"},
		Store: StoreConfig{
			Type:        "badger",
			SearchLimit: 25,
			Badger:      map[string]any{"in_memory": false},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    8080,
		},
	}

	ApplyDefaults(cfg)

	if cfg.Store.Type != "badger" {
		t.Errorf("Expected store type 'badger' to be preserved, got %q", cfg.Store.Type)
	}
	if cfg.Store.SearchLimit != 25 {
		t.Errorf("Expected search limit 25 to be preserved, got %d", cfg.Store.SearchLimit)
	}
	if inMemory := cfg.Store.Badger["in_memory"]; inMemory != false {
		t.Errorf("Expected explicit in_memory false to be preserved, got %v", inMemory)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics enabled to be preserved")
	}
	if cfg.Metrics.Port != 8080 {
		t.Errorf("Expected metrics port 8080 to be preserved, got %d", cfg.Metrics.Port)
	}
}

func TestApplyDefaults_NormalizesLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"Info", "INFO"},
		{"WARN", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		cfg := &Config{Logging: LoggingConfig{Level: tt.input}}

		ApplyDefaults(cfg)

		if cfg.Logging.Level != tt.expected {
			t.Errorf("Level %q: expected %q, got %q", tt.input, tt.expected, cfg.Logging.Level)
		}
	}
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected default config to validate, got error: %v", err)
	}
}
