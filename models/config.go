package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Storage             StorageConfig             `yaml:"storage" json:"storage"`
	Collection          CollectionConfig          `yaml:"collection" json:"collection"`
	Identity            IdentityConfig            `yaml:"identity" json:"identity"`
	Ethereum            EthereumConfig            `yaml:"ethereum" json:"ethereum"`
	Signer              SignerConfig              `yaml:"signer" json:"signer"`
	HTTP                HTTPConfig                `yaml:"http" json:"http"`
	Nats                NatsConfig                `yaml:"nats" json:"nats"`
	ExpirySweeper       ServiceConfig             `yaml:"expiry_sweeper" json:"expiry_sweeper"`
}

type GoogleSecretManagerConfig struct {
	Enabled          bool   `yaml:"enabled" json:"enabled"`
	ProjectID        string `yaml:"project_id" json:"project_id"`
	MongoSecretName  string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	SignerSecretName string `yaml:"signer_secret_name" json:"signer_secret_name"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
	ReadLastHealth bool  `yaml:"read_last_health" json:"read_last_health"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format" json:"format"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

const (
	StorageBackendMemory = "memory"
	StorageBackendMongo  = "mongo"
)

type StorageConfig struct {
	Backend         string `yaml:"backend" json:"backend"`
	DistributedLock bool   `yaml:"distributed_lock" json:"distributed_lock"`
}

// IdentityConfig names the principal this service acts as. Bridged tokens are held in its custody.
type IdentityConfig struct {
	Principal string `yaml:"principal" json:"principal"`
}

type EthereumConfig struct {
	RPCURL           string `yaml:"rpc_url" json:"rpcurl"`
	RPCTimeoutMillis int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
	ChainID          string `yaml:"chain_id" json:"chain_id"`
}

const (
	SignerTypeGcpKms = "gcp_kms"
	SignerTypeLocal  = "local"
)

type SignerConfig struct {
	Type          string `yaml:"type" json:"type"`
	GcpKmsKeyName string `yaml:"gcp_kms_key_name" json:"gcp_kms_key_name"`
	PrivateKey    string `yaml:"private_key" json:"private_key"`
	Mnemonic      string `yaml:"mnemonic" json:"mnemonic"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type HTTPConfig struct {
	ListenAddress      string `yaml:"listen_address" json:"listen_address"`
	ReadTimeoutMillis  int64  `yaml:"read_timeout_ms" json:"read_timeout_ms"`
	WriteTimeoutMillis int64  `yaml:"write_timeout_ms" json:"write_timeout_ms"`
	CallerHeader       string `yaml:"caller_header" json:"caller_header"`
	// RateLimitMaxRequests disables rate limiting when 0.
	RateLimitMaxRequests    uint64 `yaml:"rate_limit_max_requests" json:"rate_limit_max_requests"`
	RateLimitIntervalMillis int64  `yaml:"rate_limit_interval_ms" json:"rate_limit_interval_ms"`
}

type NatsConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	URL           string `yaml:"url" json:"url"`
	Subject       string `yaml:"subject" json:"subject"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
