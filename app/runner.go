package app

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/models"
)

type Service interface {
	Start()
	Stop()
	Health() models.ServiceHealth
}

type Runner interface {
	Run()
	Status() models.RunnerStatus
}

// RunnerService calls its runner once per interval until stopped.
type RunnerService struct {
	name     string
	runner   Runner
	wg       *sync.WaitGroup
	stop     chan bool
	interval time.Duration

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func (x *RunnerService) Start() {
	log.Info("[", x.name, "] Starting service")
	stop := false
	for !stop {
		log.Debug("[", x.name, "] Starting run")

		x.runner.Run()
		x.updateHealth()

		log.Debug("[", x.name, "] Finished run, sleeping for ", x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Info("[", x.name, "] Stopped service")
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *RunnerService) updateHealth() {
	status := x.runner.Status()

	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	lastSyncTime := time.Now()
	x.health = models.ServiceHealth{
		Name:          x.name,
		LastSyncTime:  lastSyncTime,
		NextSyncTime:  lastSyncTime.Add(x.interval),
		TransactionID: status.TransactionID,
		Processed:     status.Processed,
		Healthy:       true,
	}
}

func (x *RunnerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	return x.health
}

func (x *RunnerService) Stop() {
	log.Debug("[", x.name, "] Stopping service")
	select {
	case x.stop <- true:
	default:
	}
}

func NewRunnerService(name string, runner Runner, wg *sync.WaitGroup, interval time.Duration) Service {
	if name == "" || runner == nil || wg == nil || interval <= 0 {
		log.Debug("[RUNNER] Invalid parameters for runner service")
		return nil
	}
	return &RunnerService{
		name:     name,
		runner:   runner,
		wg:       wg,
		stop:     make(chan bool, 1),
		interval: interval,
		health:   models.ServiceHealth{Name: name},
	}
}

const EmptyServiceName = "empty"

// EmptyService stands in for a disabled service.
type EmptyService struct {
	wg *sync.WaitGroup
}

func (e *EmptyService) Start() {
	e.wg.Done()
}

func (e *EmptyService) Stop() {}

func (e *EmptyService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:    EmptyServiceName,
		Healthy: true,
	}
}

func NewEmptyService(wg *sync.WaitGroup) Service {
	return &EmptyService{wg: wg}
}
