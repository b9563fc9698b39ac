package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/app"
	"github.com/dan13ram/cknft-bridge/bridge"
	"github.com/dan13ram/cknft-bridge/eth"
	"github.com/dan13ram/cknft-bridge/eth/client"
	"github.com/dan13ram/cknft-bridge/eth/util"
	"github.com/dan13ram/cknft-bridge/events"
	"github.com/dan13ram/cknft-bridge/ledger"
	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/router"
	"github.com/dan13ram/cknft-bridge/store"
)

func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var configPath string
	var envPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&envPath, "env", "", "path to env file")
	flag.Parse()

	var absConfigPath string
	var absEnvPath string
	if configPath != "" {
		absConfigPath, _ = filepath.Abs(configPath)
	}
	if envPath != "" {
		absEnvPath, _ = filepath.Abs(envPath)
	}

	app.InitConfig(absConfigPath, absEnvPath)
	app.InitLogger()

	var s store.Store
	var opts []ledger.Option
	var db app.Database
	switch app.Config.Storage.Backend {
	case models.StorageBackendMongo:
		app.InitDB()
		db = app.DB
		s = store.NewMongoStore(app.DB)
		if app.Config.Storage.DistributedLock {
			opts = append(opts, ledger.WithLocker(app.DB))
		}
	default:
		s = store.NewMemoryStore()
	}

	l := ledger.NewLedger(s, opts...)
	if err := l.Init(&app.Config.Collection); err != nil {
		log.Fatal("[LEDGER] Error initializing ledger: ", err)
	}

	signerCtx, cancelSigner := context.WithTimeout(context.Background(), signerTimeout())
	signer, err := app.NewSigner(signerCtx, app.Config.Signer)
	if err != nil {
		log.Fatal("[SIGNER] Error initializing signer: ", err)
	}
	signerAddress := signerAddressOf(signerCtx, signer.PublicKey)
	cancelSigner()

	publisher, err := events.NewPublisher(app.Config.Nats)
	if err != nil {
		log.Fatal("[NATS] Error initializing publisher: ", err)
	}

	b := bridge.NewBridge(l, signer, publisher, app.Config.Identity.Principal, signerTimeout())

	var ethClient client.EthereumClient
	var deposits *eth.DepositVerifier
	if app.Config.Ethereum.RPCURL != "" {
		ethClient, err = client.NewClient(app.Config.Ethereum)
		if err != nil {
			log.Fatal("[ETH] Error connecting to ethereum: ", err)
		}
		if err := ethClient.ValidateNetwork(context.Background()); err != nil {
			log.Fatal("[ETH] Error validating network: ", err)
		}
		deposits, err = eth.NewDepositVerifier(ethClient, app.Config.Identity.Principal)
		if err != nil {
			log.Fatal("[ETH] Error initializing deposit verifier: ", err)
		}
	} else {
		log.Info("[ETH] No rpc url configured, deposit verification disabled")
	}

	healthcheck := app.NewHealthCheck(app.Config.Identity.Principal, signerAddress, l, db)

	serviceHealthMap := make(map[string]models.ServiceHealth)
	for _, serviceHealth := range healthcheck.LastHealth().ServiceHealths {
		serviceHealthMap[serviceHealth.Name] = serviceHealth
	}

	var wg sync.WaitGroup
	var services []app.Service

	for serviceName, factory := range GetServiceFactories(b) {
		services = append(services, CreateService(&wg, serviceName, serviceHealthMap, factory))
	}

	healthService := app.NewRunnerService(
		app.HealthServiceName,
		healthcheck,
		&wg,
		time.Duration(app.Config.HealthCheck.IntervalMillis)*time.Millisecond,
	)
	if healthService == nil {
		log.Fatal("[HEALTH] Error initializing health service")
	}
	services = append(services, healthService)
	healthcheck.SetServices(services)

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	var rateLimit *router.RateLimiterConfig
	if app.Config.HTTP.RateLimitMaxRequests > 0 {
		rateLimit = &router.RateLimiterConfig{
			MaxRPI:   app.Config.HTTP.RateLimitMaxRequests,
			Interval: time.Duration(app.Config.HTTP.RateLimitIntervalMillis) * time.Millisecond,
		}
	}
	r, err := router.ConfiguredRouter(router.Options{
		Ledger:       l,
		Bridge:       b,
		Deposits:     deposits,
		Health:       healthcheck.LastHealth,
		CallerHeader: app.Config.HTTP.CallerHeader,
		RateLimit:    rateLimit,
	})
	if err != nil {
		log.Fatal("[HTTP] Error configuring router: ", err)
	}

	server := &http.Server{
		Addr:         app.Config.HTTP.ListenAddress,
		Handler:      r.Handler(),
		ReadTimeout:  time.Duration(app.Config.HTTP.ReadTimeoutMillis) * time.Millisecond,
		WriteTimeout: time.Duration(app.Config.HTTP.WriteTimeoutMillis) * time.Millisecond,
	}

	go func() {
		log.Info("[HTTP] Listening on ", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("[HTTP] Error serving: ", err)
		}
	}()

	log.Info("[MAIN] Server started")

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Gracefully shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("[HTTP] Error shutting down: ", err)
	}

	for _, service := range services {
		service.Stop()
	}
	wg.Wait()

	healthcheck.PostHealth()

	publisher.Close()
	signer.Destroy()
	if ethClient != nil {
		ethClient.Close()
	}
	if db != nil {
		if err := db.Disconnect(); err != nil {
			log.Error("[DB] Error disconnecting: ", err)
		}
	}

	log.Info("[MAIN] Server gracefully stopped")
}

func signerTimeout() time.Duration {
	if app.Config.Signer.TimeoutMillis <= 0 {
		return bridge.DefaultSignTimeout
	}
	return time.Duration(app.Config.Signer.TimeoutMillis) * time.Millisecond
}

func signerAddressOf(ctx context.Context, publicKey func(context.Context) ([]byte, error)) string {
	key, err := publicKey(ctx)
	if err != nil {
		log.Warn("[SIGNER] Error reading signer public key: ", err)
		return ""
	}
	address, err := util.DeriveAddress(key)
	if err != nil {
		log.Warn("[SIGNER] Error deriving signer address: ", err)
		return ""
	}
	log.Info("[SIGNER] Signer address: ", util.AddressHex(address))
	return util.AddressHex(address)
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)
	done <- true
}
