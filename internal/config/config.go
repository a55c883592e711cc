package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigDirPerm is the permission for the config directory (0700 = rwx------)
	ConfigDirPerm os.FileMode = 0700
	// ConfigFilePerm is the permission for the config file (0600 = rw-------)
	ConfigFilePerm os.FileMode = 0600

	// DirName is the directory under the user's home holding config and cache.
	DirName = ".sidediff"
)

type Config struct {
	InputFormat  string `mapstructure:"input_format"`
	RecordFormat string `mapstructure:"record_format"`
	MaxLines     int    `mapstructure:"max_lines"`
	CacheEnabled bool   `mapstructure:"cache_enabled"`
	CacheTTLDays int    `mapstructure:"cache_ttl_days"`
	Theme        string `mapstructure:"theme"`
	Width        int    `mapstructure:"width"`
	LogLevel     string `mapstructure:"log_level"`
}

// allowedValues lists the accepted values for enum-like keys.
var allowedValues = map[string][]string{
	"input_format":  {"text", "json", "yaml"},
	"record_format": {"json", "yaml"},
	"theme":         {"dark", "light"},
	"log_level":     {"debug", "info", "warn", "error"},
}

var integerKeys = map[string]bool{
	"max_lines":      true,
	"cache_ttl_days": true,
	"width":          true,
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

func setDefaults() {
	viper.SetDefault("input_format", "text")
	viper.SetDefault("record_format", "json")
	viper.SetDefault("max_lines", 5000)
	viper.SetDefault("cache_enabled", true)
	viper.SetDefault("cache_ttl_days", 7)
	viper.SetDefault("theme", "dark")
	viper.SetDefault("width", 0) // 0 = detect from terminal
	viper.SetDefault("log_level", "warn")
}

func Load() (*Config, error) {
	configPath, err := configDir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file yet: create the directory and use defaults
			if err := os.MkdirAll(configPath, ConfigDirPerm); err != nil {
				return nil, fmt.Errorf("failed to create config directory: %w", err)
			}
			config := &Config{}
			if err := viper.Unmarshal(config); err != nil {
				return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func Save(cfg *Config) error {
	configPath, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configPath, ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("input_format", cfg.InputFormat)
	viper.Set("record_format", cfg.RecordFormat)
	viper.Set("max_lines", cfg.MaxLines)
	viper.Set("cache_enabled", cfg.CacheEnabled)
	viper.Set("cache_ttl_days", cfg.CacheTTLDays)
	viper.Set("theme", cfg.Theme)
	viper.Set("width", cfg.Width)
	viper.Set("log_level", cfg.LogLevel)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(configFile, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// ValidateValue checks value against the accepted values for key. Unknown keys
// accept anything.
func ValidateValue(key, value string) error {
	if allowed, ok := allowedValues[key]; ok {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q for %s (allowed: %s)", value, key, strings.Join(allowed, ", "))
	}
	if integerKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: must be an integer", value, key)
		}
		if n < 0 {
			return fmt.Errorf("invalid value %q for %s: must not be negative", value, key)
		}
	}
	return nil
}

func Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("config key cannot be empty")
	}

	key = strings.TrimSpace(key)
	if strings.ContainsAny(key, " \t\n\r") {
		return fmt.Errorf("config key contains invalid characters")
	}
	if err := ValidateValue(key, value); err != nil {
		return err
	}

	configPath, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configPath, ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	// Missing file is fine, it is written below
	_ = viper.ReadInConfig()

	viper.Set(key, value)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		if err := viper.SafeWriteConfigAs(configFile); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}

	if err := os.Chmod(configFile, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

func Get(key string) interface{} {
	if key == "" {
		return nil
	}

	configPath, err := configDir()
	if err != nil {
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	setDefaults()
	_ = viper.ReadInConfig()
	return viper.Get(key)
}
