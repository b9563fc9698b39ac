package app

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

const LogFormatJSON = "json"

// InitLogger applies the configured level and format. Unknown levels fall
// back to info.
func InitLogger() {
	level, err := log.ParseLevel(strings.ToLower(Config.Logger.Level))
	if err != nil {
		log.Warn("[LOGGER] Unknown log level ", Config.Logger.Level, ", using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(Config.Logger.Format, LogFormatJSON) {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.Info("[LOGGER] Logger initialized with level: ", level.String())
}
