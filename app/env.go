package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func envInt64(name string, target *int64) {
	if os.Getenv(name) == "" {
		return
	}
	value, err := strconv.ParseInt(os.Getenv(name), 10, 64)
	if err != nil {
		log.Warn("[ENV] Error parsing ", name, ": ", err.Error())
		return
	}
	*target = value
}

func envUint64(name string, target *uint64) {
	if os.Getenv(name) == "" {
		return
	}
	value, err := strconv.ParseUint(os.Getenv(name), 10, 64)
	if err != nil {
		log.Warn("[ENV] Error parsing ", name, ": ", err.Error())
		return
	}
	*target = value
}

func envBool(name string, target *bool) {
	if os.Getenv(name) == "" {
		return
	}
	value, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		log.Warn("[ENV] Error parsing ", name, ": ", err.Error())
		return
	}
	*target = value
}

func envString(name string, target *string) {
	if os.Getenv(name) != "" {
		*target = os.Getenv(name)
	}
}

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	// mongodb
	envString("MONGODB_URI", &Config.MongoDB.URI)
	envString("MONGODB_DATABASE", &Config.MongoDB.Database)
	envInt64("MONGODB_TIMEOUT_MS", &Config.MongoDB.TimeoutMillis)

	// storage
	envString("STORAGE_BACKEND", &Config.Storage.Backend)
	envBool("STORAGE_DISTRIBUTED_LOCK", &Config.Storage.DistributedLock)

	// identity
	envString("IDENTITY_PRINCIPAL", &Config.Identity.Principal)

	// collection
	envString("COLLECTION_SYMBOL", &Config.Collection.Symbol)
	envString("COLLECTION_NAME", &Config.Collection.Name)
	envString("COLLECTION_MINTING_AUTHORITY", &Config.Collection.MintingAuthority)
	if os.Getenv("COLLECTION_CONTROLLERS") != "" {
		Config.Collection.Controllers = strings.Split(os.Getenv("COLLECTION_CONTROLLERS"), ",")
	}
	envUint64("COLLECTION_TX_WINDOW", &Config.Collection.TxWindow)
	envUint64("COLLECTION_PERMITTED_DRIFT", &Config.Collection.PermittedDrift)
	envString("COLLECTION_CKNFT_ETH_ADDRESS", &Config.Collection.BridgeContract)
	envString("COLLECTION_ECDSA_KEY_NAME", &Config.Collection.SigningKeyName)
	envUint64("COLLECTION_MINT_EXPIRY_SECS", &Config.Collection.MintExpirySecs)

	// ethereum
	envString("ETH_RPC_URL", &Config.Ethereum.RPCURL)
	envString("ETH_CHAIN_ID", &Config.Ethereum.ChainID)
	envInt64("ETH_RPC_TIMEOUT_MS", &Config.Ethereum.RPCTimeoutMillis)

	// signer
	envString("SIGNER_TYPE", &Config.Signer.Type)
	envString("SIGNER_GCP_KMS_KEY_NAME", &Config.Signer.GcpKmsKeyName)
	envString("SIGNER_PRIVATE_KEY", &Config.Signer.PrivateKey)
	envString("SIGNER_MNEMONIC", &Config.Signer.Mnemonic)
	envInt64("SIGNER_TIMEOUT_MS", &Config.Signer.TimeoutMillis)

	// http
	envString("HTTP_LISTEN_ADDRESS", &Config.HTTP.ListenAddress)
	envInt64("HTTP_READ_TIMEOUT_MS", &Config.HTTP.ReadTimeoutMillis)
	envInt64("HTTP_WRITE_TIMEOUT_MS", &Config.HTTP.WriteTimeoutMillis)
	envString("HTTP_CALLER_HEADER", &Config.HTTP.CallerHeader)
	envUint64("HTTP_RATE_LIMIT_MAX_REQUESTS", &Config.HTTP.RateLimitMaxRequests)
	envInt64("HTTP_RATE_LIMIT_INTERVAL_MS", &Config.HTTP.RateLimitIntervalMillis)

	// nats
	envBool("NATS_ENABLED", &Config.Nats.Enabled)
	envString("NATS_URL", &Config.Nats.URL)
	envString("NATS_SUBJECT", &Config.Nats.Subject)
	envInt64("NATS_TIMEOUT_MS", &Config.Nats.TimeoutMillis)

	// expiry sweeper
	envBool("EXPIRY_SWEEPER_ENABLED", &Config.ExpirySweeper.Enabled)
	envInt64("EXPIRY_SWEEPER_INTERVAL_MS", &Config.ExpirySweeper.IntervalMillis)

	// health check
	envInt64("HEALTH_CHECK_INTERVAL_MS", &Config.HealthCheck.IntervalMillis)
	envBool("HEALTH_CHECK_READ_LAST_HEALTH", &Config.HealthCheck.ReadLastHealth)

	// logging
	if Config.Logger.Level == "" {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			log.Warn("[ENV] Setting LogLevel to info")
			Config.Logger.Level = "info"
		} else {
			Config.Logger.Level = logLevel
		}
	}
	envString("LOG_FORMAT", &Config.Logger.Format)

	// google secret manager
	envBool("GOOGLE_SECRET_MANAGER_ENABLED", &Config.GoogleSecretManager.Enabled)
	envString("GOOGLE_PROJECT_ID", &Config.GoogleSecretManager.ProjectID)
	envString("GOOGLE_MONGO_SECRET_NAME", &Config.GoogleSecretManager.MongoSecretName)
	envString("GOOGLE_SIGNER_SECRET_NAME", &Config.GoogleSecretManager.SignerSecretName)
}
