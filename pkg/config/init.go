package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigTemplate is the annotated configuration file written by
// InitConfig. It mirrors GetDefaultConfig.
const defaultConfigTemplate = `# ChronoStore Configuration File
#
# All values shown are the defaults; edit as needed.
# Environment variables (CHRONOSTORE_*) override file values.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: "INFO"

store:
  # Store implementation: memory | badger
  type: "memory"

  # Maximum number of names a search returns
  search_limit: 10

  # Memory store settings (used when type = "memory")
  memory: {}

  # BadgerDB store settings (used when type = "badger")
  badger:
    # Badger runs strictly in-memory; disk mode is not supported
    in_memory: true

metrics:
  # Enable Prometheus metrics collection and the /metrics endpoint
  enabled: false

  # HTTP port for the metrics server
  port: 9090
`

// InitConfig writes the default configuration file to the default
// location ($XDG_CONFIG_HOME/chronostore/config.yaml or
// ~/.config/chronostore/config.yaml).
//
// Parameters:
//   - force: Overwrite an existing config file
//
// Returns:
//   - string: Path of the written config file
//   - error: If the file exists (without force) or writing fails
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()

	if err := os.MkdirAll(GetConfigDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := writeConfigFile(configPath, force); err != nil {
		return "", err
	}

	return configPath, nil
}

// InitConfigToPath writes the default configuration file to an explicit
// path, creating parent directories as needed.
//
// Parameters:
//   - path: Destination file path
//   - force: Overwrite an existing file
//
// Returns:
//   - error: If the file exists (without force) or writing fails
func InitConfigToPath(path string, force bool) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	return writeConfigFile(path, force)
}

// writeConfigFile writes the default template, refusing to clobber an
// existing file unless force is set.
func writeConfigFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
