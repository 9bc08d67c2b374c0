package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Service    ServiceConfig    `toml:"service"`
	Generation GenerationConfig `toml:"generation"`
	Store      StoreConfig      `toml:"store"`
	Media      MediaConfig      `toml:"media"`
}

// ServiceConfig contains settings for the remote video generation backend.
type ServiceConfig struct {
	BaseURL           string `toml:"base_url"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	MaxRetries        int    `toml:"max_retries"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// Timeout returns the generation deadline as a [time.Duration].
func (s ServiceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// GenerationConfig contains default parameters for generation requests.
//
// Duration and Resolution of zero/empty defer to the backend's per-model defaults.
type GenerationConfig struct {
	Model      string `toml:"model"`
	Prompt     string `toml:"prompt"`
	Duration   int    `toml:"duration"`
	Resolution string `toml:"resolution"`
}

// StoreConfig contains settings for the persisted application store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// MediaConfig contains limits for uploaded photos.
type MediaConfig struct {
	MaxFileMB   int `toml:"max_file_mb"`
	MaxWidth    int `toml:"max_width"`
	JPEGQuality int `toml:"jpeg_quality"`
}

// MaxFileBytes returns the upload size cap in bytes.
func (m MediaConfig) MaxFileBytes() int64 {
	if m.MaxFileMB <= 0 {
		return 10 << 20
	}
	return int64(m.MaxFileMB) << 20
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
