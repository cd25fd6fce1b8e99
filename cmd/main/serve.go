package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/container"

	log "github.com/sirupsen/logrus"
)

func newServeCommand(flags map[string]cobraflags.Flag) *cobra.Command {
	return newCommand(flags, "serve", "Serve the HTTP API and deliver quote requests", serve)
}

func serve(cfg *config.Config) error {
	log.Info("Starting storefront...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		return err
	}

	log.Info("Storefront stopped")
	return nil
}
