package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/container"

	log "github.com/sirupsen/logrus"
)

func newCheckCommand(flags map[string]cobraflags.Flag) *cobra.Command {
	return newCommand(flags, "check", "Verify that the content feed is consistent with the taxonomy", check)
}

func check(cfg *config.Config) error {
	if _, err := container.LoadStorefront(cfg.Catalog); err != nil {
		return err
	}

	log.Info("✅ Content feed is consistent")
	return nil
}
