package main

import (
	"context"
	"fmt"

	"github.com/glowstack/reel/internal/shared"
	"github.com/urfave/cli/v3"
)

// Health checks whether the generation backend is reachable.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: generation service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("checking backend health", "service", r.service.Name())

	if r.service.CheckHealth(ctx) {
		r.writePlain("✓ %s backend is healthy (%s)\n", r.service.Name(), r.config.Service.BaseURL)
		return nil
	}

	r.writePlain("✗ %s backend is unreachable (%s)\n", r.service.Name(), r.config.Service.BaseURL)
	return fmt.Errorf("%w: backend health check failed", shared.ErrServiceUnavailable)
}
