package main

import (
	"context"
	"fmt"
	"os"

	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/urfave/cli/v3"
)

// Setup initializes the configuration file and the local database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Store.Path)

	db, err := shared.NewDatabase(config.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, 1, 1)

	if _, err := store.NewSQLitePersister(db); err != nil {
		return fmt.Errorf("failed to prepare state table: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Store.Path)
	r.writePlain("✓ Setup complete\n")
	r.writePlain("Config: %s\n", configPath)
	r.writePlain("Database: %s\n", config.Store.Path)
	return nil
}
