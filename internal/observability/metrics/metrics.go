package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5}

// Collectors exist from package load so Record* calls are safe before Init.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	ledgerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Histogram of staking ledger operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	assetClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asset_client_latency_seconds",
			Help:    "Histogram of asset ledger call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	rewardClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reward_client_latency_seconds",
			Help:    "Histogram of reward authority call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	// number of ledger events that could not be pushed into the queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	// compensations that themselves failed need manual reconciliation
	compensationFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_compensation_failure_count",
			Help: "Number of failed rollbacks or refunds after a partially applied operation",
		},
		[]string{"operation"},
	)
)

// Init registers the collectors and starts the metrics server.
func Init(metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		ledgerOperationDuration,
		assetClientLatency,
		rewardClientLatency,
		dbLatency,
		queueSendErrorCounter,
		compensationFailureCounter,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordLedgerOperation(d time.Duration, operation string, failure bool) {
	ledgerOperationDuration.WithLabelValues(operation, outcome(failure).String()).Observe(d.Seconds())
}

func RecordAssetClientLatency(d time.Duration, method string, failure bool) {
	assetClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordRewardClientLatency(d time.Duration, method string, failure bool) {
	rewardClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func IncCompensationFailures(operation string) {
	compensationFailureCounter.WithLabelValues(operation).Inc()
}
