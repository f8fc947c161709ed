package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("LXANNOTATE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// Config file doesn't exist, which is fine - we'll use defaults
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	backendURL := viper.GetString("backend.url")
	if !strings.HasPrefix(backendURL, "http://") && !strings.HasPrefix(backendURL, "https://") {
		return fmt.Errorf("invalid backend url: %s", backendURL)
	}

	if viper.GetString("storage.path") == "" {
		fmt.Println("Warning: No storage path configured, drafts will not survive restarts")
	}

	// Auto-correct invalid rate limiter settings
	if viper.GetInt("backend.requests_per_second") <= 0 {
		viper.Set("backend.requests_per_second", 20)
	}
	if viper.GetInt("backend.burst_size") <= 0 {
		viper.Set("backend.burst_size", 5)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		return fmt.Errorf("invalid backend url: %s", c.Backend.URL)
	}

	if c.Backend.RequestsPerSecond <= 0 {
		c.Backend.RequestsPerSecond = 20
	}
	if c.Backend.BurstSize <= 0 {
		c.Backend.BurstSize = 5
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Storage defaults
	viper.SetDefault("storage.path", "./data/annotate.db")
	viper.SetDefault("storage.log_queries", false)

	// Backend defaults
	viper.SetDefault("backend.url", "http://localhost:8000")
	viper.SetDefault("backend.timeout", 10*time.Second)
	viper.SetDefault("backend.requests_per_second", 20)
	viper.SetDefault("backend.burst_size", 5)
	viper.SetDefault("backend.user_agent", "AnnotateGateway/1.0")

	// Draft defaults
	viper.SetDefault("drafts.storage_key", "lx-annotate-drafts")

	// Stats defaults
	viper.SetDefault("stats.stale_after", 5*time.Minute)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
}
