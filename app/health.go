package app

import (
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dan13ram/cknft-bridge/models"
)

const HealthServiceName = "HEALTH"

// LedgerStatus is the part of the ledger reported in health documents.
type LedgerStatus interface {
	TransactionID() (models.Nat, error)
	TotalSupply() (models.Nat, error)
}

// HealthCheckRunner collects the health of every service together with the
// ledger counters. It persists the document when a database is configured.
type HealthCheckRunner struct {
	principal     string
	hostname      string
	signerAddress string
	ledger        LedgerStatus
	db            Database

	services []Service

	mu   sync.RWMutex
	last models.Health
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return models.RunnerStatus{
		TransactionID: x.last.TransactionID,
	}
}

func (x *HealthCheckRunner) SetServices(services []Service) {
	x.services = services
}

// ServiceHealths skips disabled services.
func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		if service == nil {
			continue
		}
		health := service.Health()
		if health.Name == EmptyServiceName {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

func (x *HealthCheckRunner) filter() bson.M {
	return bson.M{
		"principal": x.principal,
		"hostname":  x.hostname,
	}
}

func (x *HealthCheckRunner) FindLastHealth() (models.Health, error) {
	var health models.Health
	if x.db == nil {
		return health, ErrNoDocuments
	}
	err := x.db.FindOne(models.CollectionHealthChecks, x.filter(), &health)
	return health, err
}

func (x *HealthCheckRunner) LastHealth() models.Health {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return x.last
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	txID, err := x.ledger.TransactionID()
	if err != nil {
		log.Error("[HEALTH] Error reading transaction id: ", err)
	}
	supply, err := x.ledger.TotalSupply()
	if err != nil {
		log.Error("[HEALTH] Error reading total supply: ", err)
	}

	now := time.Now()
	health := models.Health{
		Principal:      x.principal,
		SignerAddress:  x.signerAddress,
		Hostname:       x.hostname,
		ServiceHealths: x.ServiceHealths(),
		TransactionID:  txID.String(),
		TotalSupply:    supply.String(),
		UpdatedAt:      now,
	}

	x.mu.Lock()
	if x.last.CreatedAt.IsZero() {
		health.CreatedAt = now
	} else {
		health.CreatedAt = x.last.CreatedAt
	}
	x.last = health
	x.mu.Unlock()

	if x.db == nil {
		return true
	}

	update := bson.M{
		"$set": bson.M{
			"signer_address":  health.SignerAddress,
			"service_healths": health.ServiceHealths,
			"transaction_id":  health.TransactionID,
			"total_supply":    health.TotalSupply,
			"updated_at":      health.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": health.CreatedAt,
		},
	}
	if err := x.db.UpsertOne(models.CollectionHealthChecks, x.filter(), update); err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}
	log.Debug("[HEALTH] Posted health")
	return true
}

// NewHealthCheck builds the runner. db may be nil for the memory backend.
func NewHealthCheck(principal string, signerAddress string, ledger LedgerStatus, db Database) *HealthCheckRunner {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Warn("[HEALTH] Error getting hostname: ", err)
	}

	x := &HealthCheckRunner{
		principal:     principal,
		hostname:      hostname,
		signerAddress: signerAddress,
		ledger:        ledger,
		db:            db,
	}

	if db != nil && Config.HealthCheck.ReadLastHealth {
		if last, err := x.FindLastHealth(); err == nil {
			log.Debug("[HEALTH] Found last health from ", last.UpdatedAt)
			x.last = last
		}
	}

	log.Info("[HEALTH] Initialized health")
	return x
}
