package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme values accepted by the presentation shell
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Supported UI languages
const (
	LangEnglish = "en"
	LangChinese = "zh"
)

// Config holds user preferences
type Config struct {
	Theme         string `yaml:"theme" json:"theme"`                   // UI theme: system, light, dark
	Language      string `yaml:"language" json:"language"`             // UI language: en, zh
	RetentionDays int    `yaml:"retention_days" json:"retention_days"` // Days a trashed note is kept
	AutoClean     bool   `yaml:"auto_clean" json:"auto_clean"`         // Sweep expired trash automatically
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for purge

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// TrashConfig is the subset of Config the retention sweep consumes.
type TrashConfig struct {
	RetentionDays int  `json:"retention_days"`
	AutoClean     bool `json:"auto_clean"`
}

// Trash returns the retention policy view of the config
func (c *Config) Trash() TrashConfig {
	return TrashConfig{RetentionDays: c.RetentionDays, AutoClean: c.AutoClean}
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".stickpad", "logs", "stickpad.log")
	}

	return &Config{
		Theme:         ThemeSystem,
		Language:      LangEnglish,
		RetentionDays: 30,
		AutoClean:     false,
		ConfirmDelete: true,
		LogLevel:      getEnv("STICKPAD_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("STICKPAD_LOG_FILE", logPath),
		LogConsole:    getEnv("STICKPAD_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Path returns the config file location (~/.stickpad/config.yaml)
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stickpad", "config.yaml"), nil
}

// Load loads config from ~/.stickpad/config.yaml
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.stickpad/config.yaml
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
