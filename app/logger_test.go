package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/dan13ram/cknft-bridge/models"
)

func TestInitLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	defer func() { Config.Logger = models.LoggerConfig{} }()

	Config.Logger.Level = "debug"
	Config.Logger.Format = "json"
	InitLogger()
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	Config.Logger.Level = "loud"
	Config.Logger.Format = ""
	InitLogger()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
}
