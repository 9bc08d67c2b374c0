package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/glowstack/reel/internal/repositories"
	"github.com/glowstack/reel/internal/server"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/web"
)

// Serve runs the local video generation backend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	videoDir := cmd.String("dir")

	db, err := shared.NewDatabase(r.config.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, 1, 1)

	repo, err := repositories.NewJobRepository(db)
	if err != nil {
		return fmt.Errorf("failed to prepare job table: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewGenerateHandler(repo, videoDir, r.logger))
	router.Handler(&server.HealthHandler{})
	router.Handler(server.NewVideoHandler(videoDir))
	router.Handler(&web.IndexHandler{})

	srv := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	r.logger.Info("backend listening", "addr", addr, "videos", videoDir)
	r.writePlain("Backend listening on %s (videos in %s)\n", addr, videoDir)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	return srv.Shutdown(context.Background())
}
