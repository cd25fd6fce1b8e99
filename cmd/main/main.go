package main

import (
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/logging"

	log "github.com/sirupsen/logrus"
)

const configFlag = "config"

// newCommonFlags returns the flags shared by every subcommand, registered once on the root
func newCommonFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		configFlag: &cobraflags.StringFlag{
			Name:       configFlag,
			Value:      "",
			Usage:      "Path to the config file (default: ./config.yaml if present)",
			Persistent: true,
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Errorf("❌ %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Equipment catalog and RFQ backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := newCommonFlags()
	cobraflags.RegisterMap(rootCmd, flags)

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newMigrateCommand(flags))

	return rootCmd
}

func newCommand(flags map[string]cobraflags.Flag, use, short string, run func(cfg *config.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Load configuration using viper
			cfg, err := config.Load(flags[configFlag].GetString())
			if err != nil {
				return err
			}
			logging.Setup(cfg.Log)
			log.Debug("Configuration loaded successfully")

			return run(cfg)
		},
	}
}
