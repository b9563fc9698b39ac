package app

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/dan13ram/cknft-bridge/models"
)

var (
	Config models.Config
)

const (
	defaultListenAddress = ":8080"
	defaultCallerHeader  = "X-Caller-Principal"
)

func InitConfig(configFile string, envFile string) {
	log.Debug("[CONFIG] Initializing config")
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readKeysFromGSM()
	applyDefaults()
	validateConfig()
	log.Info("[CONFIG] Config initialized")
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}
	log.Debug("[CONFIG] Reading config file ", configFile)
	yamlFile, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}
	log.Debug("[CONFIG] Config loaded from file")
	return true
}

func applyDefaults() {
	if Config.Storage.Backend == "" {
		Config.Storage.Backend = models.StorageBackendMemory
	}
	if Config.HTTP.ListenAddress == "" {
		Config.HTTP.ListenAddress = defaultListenAddress
	}
	if Config.HTTP.CallerHeader == "" {
		Config.HTTP.CallerHeader = defaultCallerHeader
	}
	if Config.Signer.Type == "" {
		Config.Signer.Type = models.SignerTypeLocal
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")

	switch Config.Storage.Backend {
	case models.StorageBackendMemory:
		if Config.Storage.DistributedLock {
			log.Fatal("[CONFIG] Storage.DistributedLock requires the mongo backend")
		}
	case models.StorageBackendMongo:
		if Config.MongoDB.URI == "" {
			log.Fatal("[CONFIG] MongoDB.URI is required")
		}
		if Config.MongoDB.Database == "" {
			log.Fatal("[CONFIG] MongoDB.Database is required")
		}
		if Config.MongoDB.TimeoutMillis == 0 {
			log.Fatal("[CONFIG] MongoDB.TimeoutMillis is required")
		}
	default:
		log.Fatal("[CONFIG] Storage.Backend is invalid: ", Config.Storage.Backend)
	}

	if Config.Identity.Principal == "" {
		log.Fatal("[CONFIG] Identity.Principal is required")
	}
	if _, err := models.SubaccountFromPrincipal(Config.Identity.Principal); err != nil {
		log.Fatal("[CONFIG] Identity.Principal is invalid: ", err)
	}

	if Config.Collection.MintingAuthority == "" {
		log.Fatal("[CONFIG] Collection.MintingAuthority is required")
	}
	if len(Config.Collection.Controllers) == 0 {
		log.Fatal("[CONFIG] Collection.Controllers is required")
	}
	if Config.Collection.TxWindow == 0 {
		log.Fatal("[CONFIG] Collection.TxWindow is required")
	}

	switch Config.Signer.Type {
	case models.SignerTypeGcpKms:
		if Config.Signer.GcpKmsKeyName == "" {
			log.Fatal("[CONFIG] Signer.GcpKmsKeyName is required")
		}
	case models.SignerTypeLocal:
		if Config.Signer.PrivateKey == "" && Config.Signer.Mnemonic == "" {
			log.Fatal("[CONFIG] Signer.PrivateKey or Signer.Mnemonic is required")
		}
	default:
		log.Fatal("[CONFIG] Signer.Type is invalid: ", Config.Signer.Type)
	}

	if Config.HTTP.RateLimitMaxRequests > 0 && Config.HTTP.RateLimitIntervalMillis <= 0 {
		log.Fatal("[CONFIG] HTTP.RateLimitIntervalMillis is required")
	}

	if Config.ExpirySweeper.Enabled && Config.ExpirySweeper.IntervalMillis == 0 {
		log.Fatal("[CONFIG] ExpirySweeper.IntervalMillis is required")
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		log.Fatal("[CONFIG] HealthCheck.IntervalMillis is required")
	}
	if Config.Nats.Enabled && Config.Nats.URL == "" {
		log.Fatal("[CONFIG] Nats.URL is required")
	}

	log.Debug("[CONFIG] Config validated")
}
