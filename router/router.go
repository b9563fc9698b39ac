package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dan13ram/cknft-bridge/bridge"
	"github.com/dan13ram/cknft-bridge/eth"
	"github.com/dan13ram/cknft-bridge/ledger"
	"github.com/dan13ram/cknft-bridge/models"
)

// Router provides a small api around mux.Router.
type Router struct {
	r *mux.Router
}

func NewRouter() *Router {
	return &Router{r: mux.NewRouter()}
}

// Get registers a GET only route with its own middlewares.
func (r *Router) Get(uri string, f http.HandlerFunc, mid ...mux.MiddlewareFunc) {
	sub := r.r.Path(uri).Subrouter()
	sub.HandleFunc("", f).Methods(http.MethodGet)
	sub.Use(mid...)
}

// Post registers a POST only route with its own middlewares.
func (r *Router) Post(uri string, f http.HandlerFunc, mid ...mux.MiddlewareFunc) {
	sub := r.r.Path(uri).Subrouter()
	sub.HandleFunc("", f).Methods(http.MethodPost)
	sub.Use(mid...)
}

func (r *Router) Use(mid ...mux.MiddlewareFunc) {
	r.r.Use(mid...)
}

func (r *Router) Handler() http.Handler {
	return r.r
}

// Options wires the handlers to the running components. Deposits and
// Health may be nil.
type Options struct {
	Ledger       *ledger.Ledger
	Bridge       *bridge.Bridge
	Deposits     *eth.DepositVerifier
	Health       func() models.Health
	CallerHeader string
	// RateLimit is skipped when nil.
	RateLimit *RateLimiterConfig
}

// ConfiguredRouter returns the full http surface of the service.
func ConfiguredRouter(opts Options) (*Router, error) {
	ledgerController := NewLedgerController(opts.Ledger)
	bridgeController := NewBridgeController(opts.Bridge, opts.Deposits)

	router := NewRouter()
	router.Use(WithLogging, WithCaller(opts.CallerHeader))
	if opts.RateLimit != nil {
		rateLim, err := RateLimitController(*opts.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("creating rate limit controller middleware: %s", err)
		}
		router.Use(rateLim)
	}

	get := func(uri string, f http.HandlerFunc) {
		router.Get(uri, f, WithMetrics(uri))
	}
	post := func(uri string, f http.HandlerFunc) {
		router.Post(uri, f, WithMetrics(uri))
	}

	// ledger queries
	get("/token", ledgerController.GetToken)
	get("/token_metadata", ledgerController.GetTokenMetadata)
	get("/owner_of", ledgerController.GetOwnerOf)
	get("/balance_of", ledgerController.GetBalanceOf)
	get("/tokens_of", ledgerController.GetTokensOf)
	get("/total_supply", ledgerController.GetTotalSupply)
	get("/transaction_id", ledgerController.GetTransactionID)
	get("/metadata", ledgerController.GetMetadata)
	get("/supported_standards", ledgerController.GetSupportedStandards)
	get("/transfer_log", ledgerController.GetTransferLog)
	get("/partition_details", ledgerController.GetPartitionDetails)

	// ledger updates
	post("/transfer", ledgerController.Transfer)
	post("/approve", ledgerController.Approve)
	post("/mint", ledgerController.Mint)
	post("/config", ledgerController.UpdateConfig)

	// bridge
	get("/public_key", bridgeController.GetPublicKey)
	get("/ethereum_address", bridgeController.GetEthereumAddress)
	get("/mint_status", bridgeController.GetMintStatus)
	get("/signature", bridgeController.GetSignature)
	get("/deposit_subaccount", bridgeController.GetDepositSubaccount)
	get("/expected_input", bridgeController.GetExpectedInput)
	post("/bridge/mint", bridgeController.InitiateMint)
	post("/bridge/refresh_key", bridgeController.RefreshKey)
	post("/bridge/confirm", bridgeController.ConfirmMint)
	post("/bridge/resign", bridgeController.ResignMint)
	post("/deposit/verify", bridgeController.VerifyDeposit)

	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Get("/health", healthHandler(opts.Health))

	return router, nil
}

func healthHandler(health func() models.Health) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if health == nil {
			rw.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(rw, http.StatusOK, health())
	}
}
