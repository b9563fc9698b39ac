package main

import (
	"sync"
	"time"

	"github.com/dan13ram/cknft-bridge/app"
	"github.com/dan13ram/cknft-bridge/bridge"
	"github.com/dan13ram/cknft-bridge/models"
)

// ServiceFactory builds a background service, optionally resuming from the
// health it reported before the last restart.
type ServiceFactory struct {
	Enabled                     func() bool
	CreateService               func(*sync.WaitGroup) app.Service
	CreateServiceWithLastHealth func(*sync.WaitGroup, models.ServiceHealth) app.Service
}

func CreateService(
	wg *sync.WaitGroup,
	serviceName string,
	serviceHealthMap map[string]models.ServiceHealth,
	factory ServiceFactory,
) app.Service {
	if factory.Enabled != nil && !factory.Enabled() {
		return app.NewEmptyService(wg)
	}
	var service app.Service
	if serviceHealth, ok := serviceHealthMap[serviceName]; ok && factory.CreateServiceWithLastHealth != nil {
		service = factory.CreateServiceWithLastHealth(wg, serviceHealth)
	} else {
		service = factory.CreateService(wg)
	}
	if service == nil {
		return app.NewEmptyService(wg)
	}
	return service
}

func GetServiceFactories(b *bridge.Bridge) map[string]ServiceFactory {
	interval := time.Duration(app.Config.ExpirySweeper.IntervalMillis) * time.Millisecond

	services := map[string]ServiceFactory{
		bridge.ExpirySweeperName: {
			Enabled: func() bool { return app.Config.ExpirySweeper.Enabled },
			CreateService: func(wg *sync.WaitGroup) app.Service {
				return app.NewRunnerService(bridge.ExpirySweeperName, bridge.NewExpirySweeper(b), wg, interval)
			},
			CreateServiceWithLastHealth: func(wg *sync.WaitGroup, lastHealth models.ServiceHealth) app.Service {
				return app.NewRunnerService(bridge.ExpirySweeperName, bridge.NewExpirySweeperWithLastHealth(b, lastHealth), wg, interval)
			},
		},
	}

	return services
}
