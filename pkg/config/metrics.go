package config

import (
	"github.com/chronostore/chronostore/pkg/metrics"
)

// InitializeMetrics initializes metrics collection based on configuration.
//
// If metrics are enabled in the configuration:
//   - Initializes the global Prometheus registry
//   - Creates the metrics HTTP server (not yet started)
//
// If metrics are disabled, nil is returned and store factories fall back
// to no-op metrics sinks (zero overhead).
//
// Call this before CreateStore so the store metrics bind to the live
// registry.
//
// Parameters:
//   - cfg: The complete ChronoStore configuration
//
// Returns:
//   - *metrics.Server: The exposition server, or nil when disabled
func InitializeMetrics(cfg *Config) *metrics.Server {
	if !cfg.Metrics.Enabled {
		return nil
	}

	// Initialize global Prometheus registry
	metrics.InitRegistry()

	// Create metrics HTTP server
	return metrics.NewServer(metrics.ServerConfig{
		Port: cfg.Metrics.Port,
	})
}
