package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess     = "success"
	OutcomeRecoverable = "recoverable"
	OutcomeFatal       = "fatal"
	OutcomeError       = "error"
)

var (
	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cknft_ledger_operations_total",
			Help: "Ledger state changing calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	LedgerTurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cknft_ledger_turn_duration_seconds",
			Help:    "Time spent holding the ledger turn",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	TransactionID = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cknft_ledger_transaction_id",
		Help: "Last issued ledger transaction id",
	})

	TotalSupply = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cknft_ledger_total_supply",
		Help: "Number of minted tokens",
	})

	BridgeMints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cknft_bridge_mints_total",
			Help: "Bridge mint status transitions by resulting state",
		},
		[]string{"state"},
	)

	SignerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cknft_signer_requests_total",
			Help: "Requests made to the signing service",
		},
		[]string{"method", "outcome"},
	)

	SignerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cknft_signer_request_duration_seconds",
		Help:    "Signing service latency",
		Buckets: prometheus.DefBuckets,
	})

	DepositVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cknft_deposit_verifications_total",
			Help: "Deposit verification attempts by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cknft_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	NATSConnectionStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cknft_nats_connection_status",
		Help: "NATS connection status (1=connected, 0=disconnected)",
	})

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cknft_events_published_total",
			Help: "Bridge events published by outcome",
		},
		[]string{"outcome"},
	)
)
