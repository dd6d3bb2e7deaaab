package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"wizard-cli/internal/interfaces"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("WIZARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("conf_dir", "~/.config/wizard/conf")
	v.SetDefault("template_dir", "~/.config/wizard/templates")
	v.SetDefault("create_timeout", 10.0)
	v.SetDefault("target", "stdout")
	v.SetDefault("log_level", "info")
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".config", "wizard", "config.toml")
	}

	path = expandPath(path)

	// Config file is optional; defaults apply when it is absent
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()
	m.applyFlagOverrides(config)
	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if val, exists := m.flags["conf_dir"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.ConfDir = expandPath(str)
		}
	}

	if val, exists := m.flags["template_dir"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.TemplateDir = expandPath(str)
		}
	}

	if val, exists := m.flags["create_timeout"]; exists && val != nil {
		if f, ok := val.(float64); ok && f > 0 {
			config.CreateTimeout = f
		}
	}

	if val, exists := m.flags["target"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.Target = str
		}
	}

	if val, exists := m.flags["log_level"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.LogLevel = str
		}
	}
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if config.CreateTimeout <= 0 {
		return fmt.Errorf("invalid create_timeout: %v (must be a positive number of seconds)", config.CreateTimeout)
	}

	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	if !validTargets[config.Target] && !strings.HasPrefix(config.Target, "file:") {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", config.Target)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[config.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be 'debug', 'info', 'warn', or 'error')", config.LogLevel)
	}

	// Config dir must exist or be creatable
	if config.ConfDir != "" {
		expandedPath := expandPath(config.ConfDir)
		if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
			if err := os.MkdirAll(expandedPath, 0755); err != nil {
				return fmt.Errorf("conf_dir directory does not exist and cannot be created: %s", expandedPath)
			}
		}
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		ConfDir:       expandPath(m.v.GetString("conf_dir")),
		TemplateDir:   expandPath(m.v.GetString("template_dir")),
		CreateTimeout: m.v.GetFloat64("create_timeout"),
		Target:        m.v.GetString("target"),
		LogLevel:      m.v.GetString("log_level"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
