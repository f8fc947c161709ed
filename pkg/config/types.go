package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Backend     BackendConfig  `mapstructure:"backend"`
	Drafts      DraftsConfig   `mapstructure:"drafts"`
	Stats       StatsConfig    `mapstructure:"stats"`
	Security    SecurityConfig `mapstructure:"security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// StorageConfig contains local draft storage settings
type StorageConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// BackendConfig contains clinical backend API settings
type BackendConfig struct {
	URL               string        `mapstructure:"url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	BurstSize         int           `mapstructure:"burst_size"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// DraftsConfig contains draft persistence settings
type DraftsConfig struct {
	StorageKey string `mapstructure:"storage_key"`
}

// StatsConfig contains statistics refresh settings
type StatsConfig struct {
	StaleAfter time.Duration `mapstructure:"stale_after"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}
