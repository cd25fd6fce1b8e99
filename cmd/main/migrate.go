package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/db"

	log "github.com/sirupsen/logrus"
)

func newMigrateCommand(flags map[string]cobraflags.Flag) *cobra.Command {
	return newCommand(flags, "migrate", "Apply pending database migrations", migrate)
}

func migrate(cfg *config.Config) error {
	log.Infof("🔧 Migrating database %s on %s:%d", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

	if err := db.RunMigrations(cfg.Database.DSN()); err != nil {
		return err
	}

	log.Info("✅ Database is up to date")
	return nil
}
