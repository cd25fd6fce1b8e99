package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"labequip/storefront/internal/config"
)

// Setup configures the global logrus logger from config. Unknown levels fall back to info.
func Setup(cfg config.LogConfig) {
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
