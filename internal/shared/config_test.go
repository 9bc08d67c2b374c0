package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Service.BaseURL != "http://localhost:8001" {
			t.Errorf("expected base URL http://localhost:8001, got %s", config.Service.BaseURL)
		}

		if config.Service.MaxRetries != 2 {
			t.Errorf("expected max retries 2, got %d", config.Service.MaxRetries)
		}

		if config.Service.Timeout() != 2*time.Minute {
			t.Errorf("expected 2 minute timeout, got %s", config.Service.Timeout())
		}

		if config.Generation.Model != "ltx-2" {
			t.Errorf("expected default model ltx-2, got %s", config.Generation.Model)
		}

		if config.Store.Path != "./reel.db" {
			t.Errorf("expected store path ./reel.db, got %s", config.Store.Path)
		}

		if config.Media.MaxFileBytes() != 10<<20 {
			t.Errorf("expected 10MB file cap, got %d", config.Media.MaxFileBytes())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Service.BaseURL != defaultConfig.Service.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `[service]
base_url = "http://example.com:9000"
timeout_seconds = 30
max_retries = 5

[generation]
model = "veo3"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Service.BaseURL != "http://example.com:9000" {
			t.Errorf("expected base URL http://example.com:9000, got %s", config.Service.BaseURL)
		}
		if config.Service.Timeout() != 30*time.Second {
			t.Errorf("expected 30s timeout, got %s", config.Service.Timeout())
		}
		if config.Generation.Model != "veo3" {
			t.Errorf("expected model veo3, got %s", config.Generation.Model)
		}

		t.Run("Missing File", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(tmpDir, "nope.toml")); err == nil {
				t.Error("expected error for missing config file")
			}
		})

		t.Run("Invalid TOML", func(t *testing.T) {
			badPath := filepath.Join(tmpDir, "bad.toml")
			if err := os.WriteFile(badPath, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadConfig(badPath); err == nil {
				t.Error("expected error for invalid TOML")
			}
		})
	})
}
