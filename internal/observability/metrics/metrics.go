package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	defaultHistogramBucketsSeconds = []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	clientRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outbound client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "outcome"},
	)
	operationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "protocol_operations_total",
			Help: "Protocol operations by name and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	eventSinkFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "protocol_event_sink_failures_total",
			Help: "Events that could not be written to a sink.",
		},
		[]string{"sink"},
	)
	epochGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "protocol_epoch",
			Help: "Current protocol epoch.",
		},
	)
	totalSupplyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "protocol_total_supply",
			Help: "Total supply per asset, in base units.",
		},
		[]string{"asset"},
	)
	debtGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "protocol_total_debt",
			Help: "Outstanding debt, in base units.",
		},
	)
	poolBondedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "protocol_pool_total_bonded",
			Help: "Total bonded per pool, in base units.",
		},
		[]string{"pool"},
	)
	priceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "protocol_oracle_price",
			Help: "Last valid oracle price.",
		},
	)
)

// Init registers the metrics and serves them on metricsPort.
func Init(metricsPort int, path string) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort, path)
	})
}

func initMetricsRouter(metricsPort int, path string) {
	if path == "" {
		path = "/metrics"
	}
	metricsRouter = chi.NewRouter()
	metricsRouter.Get(path, func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	go func() {
		metricsAddr := fmt.Sprintf(":%d", metricsPort)
		err := http.ListenAndServe(metricsAddr, metricsRouter)
		if err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		clientRequestLatency,
		operationCounter,
		eventSinkFailures,
		epochGauge,
		totalSupplyGauge,
		debtGauge,
		poolBondedGauge,
		priceGauge,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling
// duration. The endpoint label is given on completion, once routing has
// resolved the route pattern.
func StartHttpRequestDurationTimer() func(endpoint string, statusCode int) {
	startTime := time.Now()
	return func(endpoint string, statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

func ObserveClientRequestLatency(baseUrl string, duration time.Duration, success bool) {
	outcome := Success
	if !success {
		outcome = Error
	}
	clientRequestLatency.WithLabelValues(baseUrl, outcome.String()).Observe(duration.Seconds())
}

func RecordOperation(operation string, err error) {
	outcome := Success
	if err != nil {
		outcome = Error
	}
	operationCounter.WithLabelValues(operation, outcome.String()).Inc()
}

func RecordEventSinkFailure(sink string) {
	eventSinkFailures.WithLabelValues(sink).Inc()
}

// ProtocolSnapshot is the gauge-level view of the protocol after an operation.
type ProtocolSnapshot struct {
	Epoch      uint64
	Debt       float64
	Price      float64
	PriceValid bool
	Supply     map[string]float64
	Bonded     map[string]float64
}

func RecordProtocolSnapshot(s ProtocolSnapshot) {
	epochGauge.Set(float64(s.Epoch))
	debtGauge.Set(s.Debt)
	if s.PriceValid {
		priceGauge.Set(s.Price)
	}
	for asset, v := range s.Supply {
		totalSupplyGauge.WithLabelValues(asset).Set(v)
	}
	for pool, v := range s.Bonded {
		poolBondedGauge.WithLabelValues(pool).Set(v)
	}
}
